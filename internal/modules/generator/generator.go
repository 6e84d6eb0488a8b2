// Package generator samples and scores candidate number combinations.
package generator

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
)

// Candidate is one scored combination. Transient - callers keep only
// the suggestions they are handed.
type Candidate struct {
	ID      string          `json:"id"`
	Numbers []int           `json:"numbers"`
	Score   float64         `json:"resonance_score"`
	Details map[string]bool `json:"details"`
}

// Config tunes the candidate search. Attempts and Threshold are
// injectable so tests can force the early-exit and exhausted-budget
// paths; Rand makes the sample stream deterministic.
type Config struct {
	Attempts  int
	Threshold float64
	Rand      *rand.Rand
}

// Generator runs the bounded random search. Stateless between calls
// apart from the RNG stream.
type Generator struct {
	rules []Rule
	cfg   Config
	rng   *rand.Rand
}

// New creates a generator over the given rule registry.
func New(rules []Rule, cfg Config) *Generator {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rules: rules, cfg: cfg, rng: rng}
}

// Generate samples up to Attempts combinations, keeps the best-scoring
// one, and exits early once a score clears the threshold. Always
// returns a structurally valid candidate.
func (g *Generator) Generate() Candidate {
	best := Candidate{Score: -1}

	for i := 0; i < g.cfg.Attempts; i++ {
		nums := g.sample()
		score, details := Score(nums, g.rules)

		if score > best.Score {
			best = Candidate{Numbers: nums, Score: score, Details: details}
		}
		if score > g.cfg.Threshold {
			break
		}
	}

	best.ID = uuid.NewString()
	return best
}

// sample draws 6 distinct numbers in [1,45], ascending. Sampling
// without replacement - duplicates are impossible.
func (g *Generator) sample() []int {
	perm := g.rng.Perm(history.MaxNumber)
	nums := make([]int, history.DrawSize)
	for i := 0; i < history.DrawSize; i++ {
		nums[i] = perm[i] + 1
	}
	sort.Ints(nums)
	return nums
}
