package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/climatetracker/internal/client/models"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
)

func printAssessment(w io.Writer, a *insight.Assessment) {
	b := a.Breakdown
	fmt.Fprintf(w, "Electricity: %.2f kg CO2\n", b.Electricity)
	fmt.Fprintf(w, "Petrol:      %.2f kg CO2\n", b.Petrol)
	fmt.Fprintf(w, "Food:        %.2f kg CO2\n", b.Food)
	fmt.Fprintf(w, "Total Carbon Emission: %.2f kg CO2\n", b.Total)
	fmt.Fprintf(w, "Sustainability Score: %d/100\n", a.Score)

	if len(a.Suggestions) > 0 {
		fmt.Fprintln(w, "Suggestions:")
		for _, s := range a.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s.Message)
		}
	}
}

func printLeaderboard(w io.Writer, ranking []models.RankEntry) {
	fmt.Fprintln(w, "Leaderboard:")
	if len(ranking) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for i, e := range ranking {
		fmt.Fprintf(w, "  %d. %s %.2f\n", i+1, e.UserName, e.Emission)
	}
}

func printHistory(w io.Writer, history []float64) {
	fmt.Fprintln(w, "History:")
	if len(history) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for i, v := range history {
		fmt.Fprintf(w, "  month %d: %.2f kg CO2\n", i+1, v)
	}
}

func printPrediction(w io.Writer, p *models.Prediction) {
	if !p.Available {
		fmt.Fprintln(w, p.Message)
		return
	}
	fmt.Fprintf(w, "Predicted Next Month Emission: %.2f kg CO2\n", p.Value)
}
