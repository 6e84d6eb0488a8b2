package history

import (
	"context"

	"github.com/rs/zerolog"
)

// RoundFetcher retrieves a single round from the upstream draw source.
// A false second return means the round is unavailable (not yet drawn,
// upstream unreachable, or malformed response) - never an error.
type RoundFetcher interface {
	FetchRound(ctx context.Context, round int) (DrawRecord, bool)
}

// probeAhead bounds how many rounds past the newest known one a single
// top-up attempts. Keeps per-request network cost flat.
const probeAhead = 2

// Store owns one loaded copy of the draw archive for the lifetime of
// an execution context. Single writer: UpdateHistory at context start.
type Store struct {
	providers []Provider
	fetcher   RoundFetcher
	archive   Archive
	baseline  int
	log       zerolog.Logger
}

// NewStore creates a store over the given tiers, highest priority first.
func NewStore(providers []Provider, fetcher RoundFetcher, baseline int, log zerolog.Logger) *Store {
	return &Store{
		providers: providers,
		fetcher:   fetcher,
		archive:   Archive{},
		baseline:  baseline,
		log:       log.With().Str("component", "history").Logger(),
	}
}

// Load pulls the archive from the first readable tier. Missing or
// corrupt tiers are skipped; with no readable tier the store starts
// empty. Never fails.
func (s *Store) Load() Archive {
	for _, p := range s.providers {
		archive, err := p.Read()
		if err != nil {
			s.log.Debug().Err(err).Str("tier", p.Name()).Msg("Archive tier unavailable")
			continue
		}
		if archive == nil {
			archive = Archive{}
		}
		s.log.Info().Str("tier", p.Name()).Int("rounds", len(archive)).Msg("Loaded draw archive")
		s.archive = archive
		return s.archive
	}

	s.log.Warn().Msg("No readable archive tier, starting with empty history")
	s.archive = Archive{}
	return s.archive
}

// UpdateHistory tops up the archive with the next rounds past the
// newest known one, stopping at the first miss. Best-effort: fetch and
// persistence failures degrade silently. targetCount is the desired
// archive depth; the top-up never backfills toward it, it only keeps
// the head fresh.
func (s *Store) UpdateHistory(ctx context.Context, targetCount int) {
	start := s.archive.MaxRound()
	if start < s.baseline {
		start = s.baseline
	}

	fetched := 0
	for probe := start + 1; probe <= start+probeAhead; probe++ {
		if _, known := s.archive[probe]; known {
			continue
		}
		rec, ok := s.fetcher.FetchRound(ctx, probe)
		if !ok {
			break
		}
		s.archive[probe] = rec
		fetched++
	}

	if fetched > 0 {
		s.log.Info().Int("fetched", fetched).Int("total", len(s.archive)).Msg("History updated")
		s.persist()
	}
}

// persist writes the archive to every writable tier, best-effort.
func (s *Store) persist() {
	for _, p := range s.providers {
		if !p.Writable() {
			continue
		}
		if err := p.Write(s.archive); err != nil {
			// Ephemeral or read-only filesystems are expected here.
			s.log.Debug().Err(err).Str("tier", p.Name()).Msg("Archive write skipped")
		}
	}
}

// LastN returns up to n most recent records, newest first.
func (s *Store) LastN(n int) []DrawRecord {
	return s.archive.LastN(n)
}

// Count returns the number of archived rounds.
func (s *Store) Count() int {
	return len(s.archive)
}

// Tiers lists the configured provider names in priority order.
func (s *Store) Tiers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}
