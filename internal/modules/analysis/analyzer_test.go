package analysis

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
)

func TestCalibrateEmptyHistoryKeepsNeutralWeights(t *testing.T) {
	analyzer := New(nil, zerolog.Nop())
	analyzer.Calibrate()

	weights := analyzer.Weights()
	require.Len(t, weights, 10)
	for name, w := range weights {
		assert.Equal(t, NeutralWeight, w, "weight %q should stay neutral", name)
	}
	assert.Equal(t, 0, analyzer.HistoryCount())

	low, high := analyzer.SumBand()
	assert.Equal(t, DefaultSumLow, low)
	assert.Equal(t, DefaultSumHigh, high)
}

func TestCalibrateSetsScoredRuleWeights(t *testing.T) {
	records := []history.DrawRecord{
		{Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
		{Round: 1145, Numbers: []int{5, 14, 26, 28, 35, 44}},
	}

	analyzer := New(records, zerolog.Nop())
	analyzer.Calibrate()

	weights := analyzer.Weights()
	assert.Equal(t, 0.8, weights["missing_zone"])
	assert.Equal(t, 0.7, weights["sum_range"])
	assert.Equal(t, 0.6, weights["odd_even"])

	// Names outside the scored registry stay neutral.
	assert.Equal(t, NeutralWeight, weights["prime_count"])
	assert.Equal(t, NeutralWeight, weights["carry_over"])

	for name, w := range weights {
		assert.GreaterOrEqual(t, w, 0.0, name)
		assert.LessOrEqual(t, w, 1.0, name)
	}
	assert.Equal(t, 2, analyzer.HistoryCount())
}

func TestCalibrateSumBandFromHistory(t *testing.T) {
	// Enough draws to trigger band derivation; sums cluster near 138.
	var records []history.DrawRecord
	for i := 0; i < 40; i++ {
		base := i % 5
		records = append(records, history.DrawRecord{
			Round:   1146 - i,
			Numbers: []int{1 + base, 10, 19, 27, 36, 45 - base},
		})
	}

	analyzer := New(records, zerolog.Nop())
	analyzer.Calibrate()

	low, high := analyzer.SumBand()
	assert.Less(t, low, high)
	assert.GreaterOrEqual(t, low, 21)
	assert.LessOrEqual(t, high, 255)

	// The draws above all sum to 138; the band must cover that.
	assert.LessOrEqual(t, low, 138)
	assert.GreaterOrEqual(t, high, 138)
}

func TestCalibrateShortHistoryKeepsDefaultBand(t *testing.T) {
	records := []history.DrawRecord{
		{Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}

	analyzer := New(records, zerolog.Nop())
	analyzer.Calibrate()

	low, high := analyzer.SumBand()
	assert.Equal(t, DefaultSumLow, low)
	assert.Equal(t, DefaultSumHigh, high)
}

func TestSnapshotRoundTrip(t *testing.T) {
	records := []history.DrawRecord{
		{Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}
	analyzer := New(records, zerolog.Nop())
	analyzer.Calibrate()

	path := filepath.Join(t.TempDir(), "calibration.msgpack")
	require.NoError(t, WriteSnapshot(path, analyzer.Snapshot()))

	loaded, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, analyzer.Weights(), loaded.Weights)
	assert.Equal(t, 1, loaded.HistoryCount)
	assert.False(t, loaded.CalibratedAt.IsZero())
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "missing.msgpack"))
	assert.Error(t, err)
}
