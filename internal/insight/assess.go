package insight

import (
	"math"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places shown to users.
const DisplayPlaces = 2

// Assessment is everything derivable from a single month of usage.
type Assessment struct {
	Breakdown   Breakdown       `json:"breakdown"`
	Score       int             `json:"sustainability_score"`
	Suggestions []Suggestion    `json:"suggestions"`
	Proportions []CategoryShare `json:"proportions"`
}

// Assess computes the breakdown of u and derives score, suggestions and
// chart proportions from it.
func Assess(u Usage, advisor *RuleBasedAdvisor) Assessment {
	b := Compute(u)
	return Assessment{
		Breakdown:   b,
		Score:       SustainabilityScore(b.Total),
		Suggestions: advisor.Suggest(b),
		Proportions: Proportions(b),
	}
}

// Round rounds v half away from zero to DisplayPlaces. Non-finite values
// are returned unchanged.
func Round(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(DisplayPlaces).InexactFloat64()
}

// Rounded returns a copy of b with every figure rounded for display.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		Electricity: Round(b.Electricity),
		Petrol:      Round(b.Petrol),
		Food:        Round(b.Food),
		Total:       Round(b.Total),
	}
}

// Rounded returns a copy of a with display-rounded figures. Score and
// suggestions are left as computed from the exact values.
func (a Assessment) Rounded() Assessment {
	out := a
	out.Breakdown = a.Breakdown.Rounded()
	out.Proportions = make([]CategoryShare, len(a.Proportions))
	for i, s := range a.Proportions {
		out.Proportions[i] = CategoryShare{Category: s.Category, Emission: Round(s.Emission)}
	}
	return out
}
