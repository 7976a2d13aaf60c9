package fit

import (
	"maps"
	"math"
	"slices"

	"github.com/spigell/fitcheck/internal/product"
)

const (
	// PerfectScore is returned when nothing can be compared.
	PerfectScore = 100.0
	// penaltyScale maps weighted millimeter differences onto the 0..100 scale.
	penaltyScale = 10.0
)

// Result is the outcome of comparing one owned size against one candidate size.
type Result struct {
	// Score may fall below 0; use Percent for display.
	Score float64 `json:"fit_score"`
	// IsSmaller is nil when no dimension could be compared.
	IsSmaller *bool `json:"is_smaller"`
}

// Compute compares the user's size with the candidate size under the given weights.
// Only dimensions that are weighted and present in both sizes take part.
func Compute(user, candidate product.Size, weights map[product.Dimension]float64) Result {
	var (
		penalty  float64
		signed   float64
		compared int
	)

	for _, d := range slices.Sorted(maps.Keys(weights)) {
		u, ok := user.Measurements.Get(d)
		if !ok {
			continue
		}
		c, ok := candidate.Measurements.Get(d)
		if !ok {
			continue
		}

		delta := float64(u - c)
		penalty += weights[d] * math.Abs(delta)
		signed += weights[d] * delta
		compared++
	}

	if compared == 0 {
		return Result{Score: PerfectScore}
	}

	smaller := signed > 0
	return Result{
		Score:     PerfectScore - penalty/penaltyScale,
		IsSmaller: &smaller,
	}
}

// Percent clamps a score into [0, 100].
func Percent(score float64) float64 {
	return math.Max(0, math.Min(PerfectScore, score))
}
