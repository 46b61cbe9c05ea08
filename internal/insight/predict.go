package insight

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// MinHistory is the smallest history PredictNext can extrapolate from.
const MinHistory = 2

// ErrNotEnoughData is returned by PredictNext for histories shorter than
// MinHistory. It is a normal outcome, not a failure.
var ErrNotEnoughData = errors.New("need at least 2 months data for prediction")

// LinearTrendPredictor fits an ordinary least squares line through
// (index, value) pairs and evaluates it one step past the last index.
// All points carry equal weight; there is no windowing or outlier handling.
type LinearTrendPredictor struct{}

func NewLinearTrendPredictor() *LinearTrendPredictor {
	return &LinearTrendPredictor{}
}

// PredictNext returns the projected value at index len(history).
func (p *LinearTrendPredictor) PredictNext(history []float64) (float64, error) {
	n := len(history)
	if n < MinHistory {
		return 0, ErrNotEnoughData
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}

	intercept, slope := stat.LinearRegression(xs, history, nil, false)
	return intercept + slope*float64(n), nil
}
