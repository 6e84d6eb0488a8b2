// Package history manages the 6/45 draw archive: tiered storage,
// incremental upstream top-up, and recent-draw queries.
package history

import "sort"

const (
	// DrawSize is the number of balls in one draw.
	DrawSize = 6
	// MinNumber and MaxNumber bound the ball domain.
	MinNumber = 1
	MaxNumber = 45
)

// DrawRecord is one official draw, identified by its round number.
// Immutable once stored.
type DrawRecord struct {
	Round   int   `json:"round"`
	Numbers []int `json:"numbers"`
}

// Valid reports whether the record holds exactly 6 distinct ascending
// numbers in [1,45] and a positive round number.
func (r DrawRecord) Valid() bool {
	if r.Round <= 0 || len(r.Numbers) != DrawSize {
		return false
	}
	prev := 0
	for _, n := range r.Numbers {
		if n < MinNumber || n > MaxNumber || n <= prev {
			return false
		}
		prev = n
	}
	return true
}

// Archive maps round number to draw record. Keys are serialized as
// strings by encoding/json, matching the on-disk format.
type Archive map[int]DrawRecord

// MaxRound returns the highest known round number, or 0 when empty.
func (a Archive) MaxRound() int {
	max := 0
	for round := range a {
		if round > max {
			max = round
		}
	}
	return max
}

// LastN returns up to n records ordered by descending round number.
// Non-positive n yields an empty slice.
func (a Archive) LastN(n int) []DrawRecord {
	if n < 0 {
		n = 0
	}
	rounds := make([]int, 0, len(a))
	for round := range a {
		rounds = append(rounds, round)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rounds)))

	if n > len(rounds) {
		n = len(rounds)
	}
	records := make([]DrawRecord, 0, n)
	for _, round := range rounds[:n] {
		records = append(records, a[round])
	}
	return records
}
