// Package analysis calibrates resonance rule weights from draw history.
package analysis

import (
	"github.com/rs/zerolog"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
	"github.com/sihoon-0077/lotto-pattern2242289/pkg/stats"
)

// NeutralWeight is the default for every rule before calibration and
// for rules with no calibration logic.
const NeutralWeight = 0.5

// Default sum band, used until enough history is loaded to derive one.
const (
	DefaultSumLow  = 120
	DefaultSumHigh = 160
)

const (
	minDrawsForSumBand = 30
	sumSMAPeriod       = 20

	// Hard bounds on any 6-of-45 sum: 1+..+6 and 40+..+45.
	minPossibleSum = 21
	maxPossibleSum = 255
)

// weightNames is the full calibration vocabulary. Only a subset maps
// to scored rules; the rest stay at the neutral weight and are kept
// for API compatibility.
var weightNames = []string{
	"missing_zone", "carry_over", "same_ending",
	"sum_range", "prime_count", "consecutive",
	"dead_zone", "odd_even", "cold_num", "hot_rest",
}

// Analyzer derives rule weights from the last N draws.
type Analyzer struct {
	history []history.DrawRecord
	weights map[string]float64
	sumLow  int
	sumHigh int
	log     zerolog.Logger
}

// New creates an analyzer over the given history (newest first).
// All weights start at the neutral level.
func New(records []history.DrawRecord, log zerolog.Logger) *Analyzer {
	weights := make(map[string]float64, len(weightNames))
	for _, name := range weightNames {
		weights[name] = NeutralWeight
	}
	return &Analyzer{
		history: records,
		weights: weights,
		sumLow:  DefaultSumLow,
		sumHigh: DefaultSumHigh,
		log:     log.With().Str("component", "analysis").Logger(),
	}
}

// Calibrate derives weights from the loaded history. A single fast
// pass, O(len(history)) at worst - it runs per warm start, not per
// candidate. Empty history keeps every weight neutral.
func (a *Analyzer) Calibrate() {
	if len(a.history) == 0 {
		return
	}

	// Fixed weight levels for the scored rules. These reflect how
	// discriminating each rule is against 6/45 draw statistics.
	a.weights["missing_zone"] = 0.8
	a.weights["sum_range"] = 0.7
	a.weights["odd_even"] = 0.6

	a.calibrateSumBand()

	a.log.Debug().
		Int("history", len(a.history)).
		Int("sum_low", a.sumLow).
		Int("sum_high", a.sumHigh).
		Msg("Calibration complete")
}

// calibrateSumBand rederives the typical-sum range as the recent
// moving average of draw sums plus/minus one standard deviation.
// Requires enough draws for the band to be meaningful.
func (a *Analyzer) calibrateSumBand() {
	if len(a.history) < minDrawsForSumBand {
		return
	}

	// History arrives newest first; the SMA wants chronological order.
	sums := make([]float64, len(a.history))
	for i, rec := range a.history {
		total := 0
		for _, n := range rec.Numbers {
			total += n
		}
		sums[len(a.history)-1-i] = float64(total)
	}

	center := stats.SMA(sums, sumSMAPeriod)
	half := stats.StdDev(sums)
	if half < 10 {
		half = 10
	}

	low := int(center - half)
	high := int(center + half)
	if low < minPossibleSum {
		low = minPossibleSum
	}
	if high > maxPossibleSum {
		high = maxPossibleSum
	}
	a.sumLow, a.sumHigh = low, high
}

// Weights returns a copy of the calibrated weight mapping.
func (a *Analyzer) Weights() map[string]float64 {
	out := make(map[string]float64, len(a.weights))
	for name, w := range a.weights {
		out[name] = w
	}
	return out
}

// HistoryCount returns the number of draws calibration saw.
func (a *Analyzer) HistoryCount() int {
	return len(a.history)
}

// SumBand returns the calibrated typical-sum range, inclusive.
func (a *Analyzer) SumBand() (low, high int) {
	return a.sumLow, a.sumHigh
}
