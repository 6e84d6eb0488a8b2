package generator

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/modules/analysis"
)

// offlineFetcher simulates an unreachable upstream.
type offlineFetcher struct{}

func (offlineFetcher) FetchRound(context.Context, int) (history.DrawRecord, bool) {
	return history.DrawRecord{}, false
}

func newTestService(t *testing.T, archive history.Archive, opts Options) *Service {
	t.Helper()

	dir := t.TempDir()
	bundledPath := filepath.Join(dir, "bundled.json")
	data, err := json.Marshal(archive)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(bundledPath, data, 0644))

	store := history.NewStore([]history.Provider{
		history.NewFileProvider("bundled", bundledPath, false),
	}, offlineFetcher{}, 1100, zerolog.Nop())
	store.Load()

	if opts.Attempts == 0 {
		opts.Attempts = 50
	}
	if opts.Threshold == 0 {
		opts.Threshold = 85.0
	}
	if opts.HistoryWindow == 0 {
		opts.HistoryWindow = 200
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(11))
	}
	return NewService(store, opts, zerolog.Nop())
}

func TestServiceNeutralBeforeRefresh(t *testing.T) {
	svc := newTestService(t, history.Archive{}, Options{})

	weights := svc.Weights()
	require.Len(t, weights, 10)
	for name, w := range weights {
		assert.Equal(t, analysis.NeutralWeight, w, name)
	}
	assert.Equal(t, 0, svc.HistoryCount())

	suggestions := svc.Suggestions(3)
	require.Len(t, suggestions, 3)
	for _, c := range suggestions {
		requireValidCandidate(t, c)
	}
}

func TestServiceRefreshCalibratesFromHistory(t *testing.T) {
	archive := history.Archive{
		1145: {Round: 1145, Numbers: []int{5, 14, 26, 28, 35, 44}},
		1146: {Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}
	svc := newTestService(t, archive, Options{})

	svc.Refresh(context.Background())

	assert.Equal(t, 2, svc.HistoryCount())
	weights := svc.Weights()
	assert.Equal(t, 0.8, weights["missing_zone"])
	assert.Equal(t, 0.7, weights["sum_range"])
	assert.Equal(t, 0.6, weights["odd_even"])
}

func TestServiceSuggestionsRankedByScore(t *testing.T) {
	archive := history.Archive{
		1146: {Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}
	svc := newTestService(t, archive, Options{})
	svc.Refresh(context.Background())

	suggestions := svc.Suggestions(5)
	require.Len(t, suggestions, 5)

	for i, c := range suggestions {
		requireValidCandidate(t, c)
		if i > 0 {
			assert.GreaterOrEqual(t, suggestions[i-1].Score, c.Score,
				"suggestions must be ranked by score descending")
		}
	}
}

func TestServiceSuggestionsNonPositiveCount(t *testing.T) {
	svc := newTestService(t, history.Archive{}, Options{})

	assert.NotPanics(t, func() {
		assert.Empty(t, svc.Suggestions(-1))
	})
	assert.Empty(t, svc.Suggestions(0))
}

func TestServiceWeightsReturnsCopy(t *testing.T) {
	svc := newTestService(t, history.Archive{}, Options{})

	weights := svc.Weights()
	weights["missing_zone"] = 99.0

	assert.Equal(t, analysis.NeutralWeight, svc.Weights()["missing_zone"],
		"mutating the returned map must not touch the engine")
}

func TestServiceRefreshWritesCalibrationSnapshot(t *testing.T) {
	snapshotPath := filepath.Join(t.TempDir(), "calibration.msgpack")
	archive := history.Archive{
		1146: {Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}
	svc := newTestService(t, archive, Options{SnapshotPath: snapshotPath})

	svc.Refresh(context.Background())

	snap, err := analysis.ReadSnapshot(snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.HistoryCount)
	assert.Equal(t, 0.8, snap.Weights["missing_zone"])
}

func TestRefreshJobNeverFails(t *testing.T) {
	svc := newTestService(t, history.Archive{}, Options{})
	job := NewRefreshJob(svc)

	assert.Equal(t, "history:refresh", job.Name())
	assert.NoError(t, job.Run())
}
