package analysis

import (
	"math"
	"math/rand"
)

// emptyBaseline is the score assumed when no evaluation contributed.
const emptyBaseline = 60

// JitterFunc yields a small random offset applied to the aggregated
// score so repeated runs on identical inputs do not produce identical
// numbers. Tests inject a fixed function to pin the outcome.
type JitterFunc func() int

// DefaultJitter draws uniformly from [-2, 2].
func DefaultJitter() int {
	return rand.Intn(5) - 2
}

// aggregateScore combines the contributing scores into the final
// value: arithmetic mean (baseline 60 for an empty list), plus
// jitter, clamped to [0,100]. The records themselves are never
// altered or dropped by aggregation.
func aggregateScore(records []ProviderEvaluation, jitter JitterFunc) float64 {
	base := float64(emptyBaseline)
	if len(records) > 0 {
		sum := 0
		for _, r := range records {
			sum += r.Record.Score
		}
		base = float64(sum) / float64(len(records))
	}

	if jitter == nil {
		jitter = DefaultJitter
	}

	return math.Min(100, math.Max(0, base+float64(jitter())))
}

// displayScore is the 0-10 scale view of the final score, rounded to
// one decimal.
func displayScore(finalScore float64) float64 {
	return math.Round(finalScore) / 10
}
