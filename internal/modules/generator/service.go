package generator

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/modules/analysis"
)

// Options tunes the suggestion service.
type Options struct {
	Attempts      int
	Threshold     float64
	HistoryWindow int
	SnapshotPath  string // optional msgpack calibration snapshot
	Rand          *rand.Rand
}

// engine is one immutable calibration context: the rule registry and
// weights derived from a specific history load. Handlers only ever
// read a snapshot; Refresh swaps in a new one.
type engine struct {
	rules        []Rule
	weights      map[string]float64
	historyCount int
}

// Service owns the history store and the current engine. Refresh is
// the only mutator, invoked at startup and from the scheduled job.
type Service struct {
	mu    sync.RWMutex
	store *history.Store
	opts  Options
	eng   *engine
	log   zerolog.Logger
}

// NewService creates the service with a neutral engine; Refresh swaps
// in a calibrated one.
func NewService(store *history.Store, opts Options, log zerolog.Logger) *Service {
	neutral := analysis.New(nil, log)
	return &Service{
		store: store,
		opts:  opts,
		eng: &engine{
			rules:   Registry(neutral.Weights(), analysis.DefaultSumLow, analysis.DefaultSumHigh),
			weights: neutral.Weights(),
		},
		log: log.With().Str("component", "generator").Logger(),
	}
}

// Refresh tops up the archive, recalibrates, and swaps in a fresh
// engine. Never fails: every failure mode inside degrades to a usable
// (possibly neutral) engine.
func (s *Service) Refresh(ctx context.Context) {
	s.store.UpdateHistory(ctx, s.opts.HistoryWindow)

	recent := s.store.LastN(s.opts.HistoryWindow)
	analyzer := analysis.New(recent, s.log)
	analyzer.Calibrate()

	sumLow, sumHigh := analyzer.SumBand()
	eng := &engine{
		rules:        Registry(analyzer.Weights(), sumLow, sumHigh),
		weights:      analyzer.Weights(),
		historyCount: analyzer.HistoryCount(),
	}

	s.mu.Lock()
	s.eng = eng
	s.mu.Unlock()

	if s.opts.SnapshotPath != "" {
		if err := analysis.WriteSnapshot(s.opts.SnapshotPath, analyzer.Snapshot()); err != nil {
			s.log.Debug().Err(err).Msg("Calibration snapshot write skipped")
		}
	}

	s.log.Info().Int("history", eng.historyCount).Msg("Engine refreshed")
}

// Suggestions runs count independent searches and returns them ranked
// by score descending. Non-positive count yields an empty slice.
func (s *Service) Suggestions(count int) []Candidate {
	if count < 0 {
		count = 0
	}
	s.mu.RLock()
	eng := s.eng
	s.mu.RUnlock()

	gen := New(eng.rules, Config{
		Attempts:  s.opts.Attempts,
		Threshold: s.opts.Threshold,
		Rand:      s.opts.Rand,
	})

	suggestions := make([]Candidate, 0, count)
	for i := 0; i < count; i++ {
		suggestions = append(suggestions, gen.Generate())
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	return suggestions
}

// Weights returns a copy of the current calibrated weight mapping.
func (s *Service) Weights() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(s.eng.weights))
	for name, w := range s.eng.weights {
		out[name] = w
	}
	return out
}

// HistoryCount returns how many draws the current engine was
// calibrated against.
func (s *Service) HistoryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.historyCount
}

// Tiers reports the configured archive tier names.
func (s *Service) Tiers() []string {
	return s.store.Tiers()
}
