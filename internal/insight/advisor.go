package insight

// Thresholds, in kg CO2, above which a category is considered high.
const (
	ElectricityThreshold = 100.0
	PetrolThreshold      = 100.0
	FoodThreshold        = 50.0
	// Totals strictly below EcoFriendlyTotal earn the "excellent" message.
	EcoFriendlyTotal = 150.0
)

// SuggestionKind identifies which rule produced a suggestion.
type SuggestionKind string

const (
	SuggestElectricity SuggestionKind = "electricity"
	SuggestPetrol      SuggestionKind = "petrol"
	SuggestFood        SuggestionKind = "food"
	SuggestExcellent   SuggestionKind = "excellent"
)

// Suggestion is a single piece of advice.
type Suggestion struct {
	Kind    SuggestionKind `json:"kind"`
	Message string         `json:"message"`
}

type rule struct {
	kind    SuggestionKind
	message string
	fires   func(Breakdown) bool
}

// RuleBasedAdvisor evaluates fixed threshold rules against a breakdown.
// Every rule fires independently and results keep rule order.
type RuleBasedAdvisor struct {
	rules []rule
}

func NewRuleBasedAdvisor() *RuleBasedAdvisor {
	return &RuleBasedAdvisor{rules: []rule{
		{
			kind:    SuggestElectricity,
			message: "Use energy-efficient appliances.",
			fires:   func(b Breakdown) bool { return b.Electricity > ElectricityThreshold },
		},
		{
			kind:    SuggestPetrol,
			message: "Try public transport.",
			fires:   func(b Breakdown) bool { return b.Petrol > PetrolThreshold },
		},
		{
			kind:    SuggestFood,
			message: "Reduce food waste.",
			fires:   func(b Breakdown) bool { return b.Food > FoodThreshold },
		},
		{
			kind:    SuggestExcellent,
			message: "Excellent! You are eco-friendly!",
			fires:   func(b Breakdown) bool { return b.Total < EcoFriendlyTotal },
		},
	}}
}

// Suggest returns the suggestions whose rules fire for b. The result is
// never nil.
func (a *RuleBasedAdvisor) Suggest(b Breakdown) []Suggestion {
	out := make([]Suggestion, 0, len(a.rules))
	for _, r := range a.rules {
		if r.fires(b) {
			out = append(out, Suggestion{Kind: r.kind, Message: r.message})
		}
	}
	return out
}
