package generator

// Rule is one boolean resonance predicate. Each passing rule
// contributes 10 x weight points toward the candidate score.
type Rule struct {
	Name   string
	Weight float64
	Check  func(nums []int) bool
}

// Registry builds the scored rule set from calibrated weights and the
// derived typical-sum band. The weight vocabulary is larger than this
// registry; the registry is authoritative for scoring.
func Registry(weights map[string]float64, sumLow, sumHigh int) []Rule {
	return []Rule{
		{Name: "Missing Zone", Weight: weights["missing_zone"], Check: MissingZone},
		{Name: "Sum Range", Weight: weights["sum_range"], Check: SumRange(sumLow, sumHigh)},
		{Name: "Odd/Even", Weight: weights["odd_even"], Check: OddEven},
	}
}

// MissingZone passes when at least one of the five number bands
// (1-10, 11-20, 21-30, 31-40, 41-45) holds no number. Draws that
// spread across every band are historically rare.
func MissingZone(nums []int) bool {
	var zones [5]bool
	for _, n := range nums {
		switch {
		case n <= 10:
			zones[0] = true
		case n <= 20:
			zones[1] = true
		case n <= 30:
			zones[2] = true
		case n <= 40:
			zones[3] = true
		default:
			zones[4] = true
		}
	}
	for _, covered := range zones {
		if !covered {
			return true
		}
	}
	return false
}

// SumRange passes when the six numbers sum inside [low, high].
func SumRange(low, high int) func(nums []int) bool {
	return func(nums []int) bool {
		total := 0
		for _, n := range nums {
			total += n
		}
		return total >= low && total <= high
	}
}

// OddEven passes when the odd count is 2, 3, or 4.
func OddEven(nums []int) bool {
	odd := 0
	for _, n := range nums {
		if n%2 != 0 {
			odd++
		}
	}
	return odd >= 2 && odd <= 4
}

// Score evaluates every rule against the candidate. Returns the
// weighted pass percentage in [0,100] plus per-rule results. An empty
// registry scores 0.
func Score(nums []int, rules []Rule) (float64, map[string]bool) {
	var achieved, max float64
	details := make(map[string]bool, len(rules))

	for _, rule := range rules {
		points := 10.0 * rule.Weight
		max += points
		passed := rule.Check(nums)
		if passed {
			achieved += points
		}
		details[rule.Name] = passed
	}

	if max <= 0 {
		return 0, details
	}
	return achieved / max * 100, details
}
