package insight

import "math"

// ScoreCeiling is the total emission at which the score reaches zero.
const ScoreCeiling = 500.0

// SustainabilityScore maps a total emission to an integer in [0, 100].
// The score falls linearly from 100 at zero to 0 at ScoreCeiling and is
// clamped at zero beyond it. Fractions are truncated.
func SustainabilityScore(total float64) int {
	score := math.Min(100, math.Max(0, 100-total/ScoreCeiling*100))
	return int(score)
}
