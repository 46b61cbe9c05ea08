package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
	"github.com/dmitrijs2005/climatetracker/internal/server/auth"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
)

// NotEnoughDataMessage is shown in place of a prediction for short histories.
const NotEnoughDataMessage = "Need at least 2 months data for prediction."

// Prediction is the projected total of the next month.
type Prediction struct {
	Available bool    `json:"available"`
	Value     float64 `json:"value"`
	Message   string  `json:"message,omitempty"`
}

// Insights are the cross-month views of a user's ledger.
type Insights struct {
	Ranking    []models.RankEntry `json:"ranking"`
	History    []float64          `json:"history"`
	Prediction Prediction         `json:"prediction"`
}

// Report is the result of a persisted calculation.
type Report struct {
	insight.Assessment
	Insights
}

// TrackerService runs the compute, record, rank and predict flow for an
// authenticated session. It holds no per-user state.
type TrackerService struct {
	ledger    *LedgerService
	advisor   *insight.RuleBasedAdvisor
	predictor *insight.LinearTrendPredictor
}

func NewTrackerService(ledger *LedgerService, advisor *insight.RuleBasedAdvisor, predictor *insight.LinearTrendPredictor) *TrackerService {
	return &TrackerService{ledger: ledger, advisor: advisor, predictor: predictor}
}

// Preview assesses u without persisting anything.
func (s *TrackerService) Preview(u insight.Usage) (insight.Assessment, error) {
	if err := u.Validate(); err != nil {
		return insight.Assessment{}, err
	}
	return insight.Assess(u, s.advisor).Rounded(), nil
}

// Calculate assesses u, records its total for the session user and returns
// the assessment together with the refreshed ranking, history and prediction.
func (s *TrackerService) Calculate(ctx context.Context, session auth.Session, u insight.Usage) (*Report, error) {
	if session.Username == "" {
		return nil, common.ErrInvalidToken
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	a := insight.Assess(u, s.advisor)
	if err := s.ledger.Record(ctx, session.Username, a.Breakdown.Total); err != nil {
		return nil, err
	}

	ins, err := s.Insights(ctx, session)
	if err != nil {
		return nil, err
	}

	return &Report{Assessment: a.Rounded(), Insights: *ins}, nil
}

// Insights returns the ranking, the session user's history and the trend
// prediction without recording anything.
func (s *TrackerService) Insights(ctx context.Context, session auth.Session) (*Insights, error) {
	if session.Username == "" {
		return nil, common.ErrInvalidToken
	}

	ranking, err := s.ledger.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.History(ctx, session.Username)
	if err != nil {
		return nil, err
	}

	return &Insights{
		Ranking:    roundRanking(ranking),
		History:    roundHistory(history),
		Prediction: s.predict(history),
	}, nil
}

// History returns the session user's display-rounded totals in insertion order.
func (s *TrackerService) History(ctx context.Context, session auth.Session) ([]float64, error) {
	if session.Username == "" {
		return nil, common.ErrInvalidToken
	}
	history, err := s.ledger.History(ctx, session.Username)
	if err != nil {
		return nil, err
	}
	return roundHistory(history), nil
}

// Ranking returns every user's best total, display-rounded.
func (s *TrackerService) Ranking(ctx context.Context, session auth.Session) ([]models.RankEntry, error) {
	if session.Username == "" {
		return nil, common.ErrInvalidToken
	}
	ranking, err := s.ledger.Ranking(ctx)
	if err != nil {
		return nil, err
	}
	return roundRanking(ranking), nil
}

func roundRanking(ranking []models.RankEntry) []models.RankEntry {
	for i := range ranking {
		ranking[i].Emission = insight.Round(ranking[i].Emission)
	}
	return ranking
}

func roundHistory(history []float64) []float64 {
	rounded := make([]float64, len(history))
	for i, v := range history {
		rounded[i] = insight.Round(v)
	}
	return rounded
}

// Predict returns the trend prediction for the session user.
func (s *TrackerService) Predict(ctx context.Context, session auth.Session) (Prediction, error) {
	if session.Username == "" {
		return Prediction{}, common.ErrInvalidToken
	}
	history, err := s.ledger.History(ctx, session.Username)
	if err != nil {
		return Prediction{}, err
	}
	return s.predict(history), nil
}

func (s *TrackerService) predict(history []float64) Prediction {
	v, err := s.predictor.PredictNext(history)
	if errors.Is(err, insight.ErrNotEnoughData) {
		return Prediction{Message: NotEnoughDataMessage}
	}
	return Prediction{Available: true, Value: insight.Round(v)}
}
