package insight

import (
	"math"

	"github.com/dmitrijs2005/climatetracker/internal/common"
)

// Emission factors in kg CO2 per usage unit.
const (
	ElectricityFactor = 0.82 // per kWh
	PetrolFactor      = 2.31 // per litre
	FoodFactor        = 0.5  // per FoodExpenseUnit of expense
	FoodExpenseUnit   = 100.0
)

// Category names used in breakdowns and charts.
const (
	CategoryElectricity = "Electricity"
	CategoryPetrol      = "Petrol"
	CategoryFood        = "Food"
)

// Usage is one month of consumption as entered by a user.
type Usage struct {
	ElectricityKWh float64 `json:"electricity_kwh"`
	PetrolLiters   float64 `json:"petrol_liters"`
	FoodExpense    float64 `json:"food_expense"`
}

// Validate rejects negative and non-finite values, and usage whose emission
// total overflows float64. Zero is accepted.
func (u Usage) Validate() error {
	for _, v := range []float64{u.ElectricityKWh, u.PetrolLiters, u.FoodExpense} {
		if !isFiniteNonNegative(v) {
			return common.ErrInvalidInput
		}
	}
	if !isFiniteNonNegative(Compute(u).Total) {
		return common.ErrInvalidInput
	}
	return nil
}

func isFiniteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Breakdown holds per-category emissions and their sum, in kg CO2.
type Breakdown struct {
	Electricity float64 `json:"electricity_emission"`
	Petrol      float64 `json:"petrol_emission"`
	Food        float64 `json:"food_emission"`
	Total       float64 `json:"total"`
}

// Compute applies the emission factors to u. It never fails; callers that
// need the non-negative invariant must call Usage.Validate first.
func Compute(u Usage) Breakdown {
	b := Breakdown{
		Electricity: u.ElectricityKWh * ElectricityFactor,
		Petrol:      u.PetrolLiters * PetrolFactor,
		Food:        (u.FoodExpense / FoodExpenseUnit) * FoodFactor,
	}
	b.Total = b.Electricity + b.Petrol + b.Food
	return b
}

// CategoryShare is one slice of a proportion chart.
type CategoryShare struct {
	Category string  `json:"category"`
	Emission float64 `json:"emission"`
}

// Proportions returns the breakdown as chart-ready category values in a fixed
// order: electricity, petrol, food.
func Proportions(b Breakdown) []CategoryShare {
	return []CategoryShare{
		{Category: CategoryElectricity, Emission: b.Electricity},
		{Category: CategoryPetrol, Emission: b.Petrol},
		{Category: CategoryFood, Emission: b.Food},
	}
}
