package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/insight"
	"github.com/dmitrijs2005/climatetracker/internal/server/auth"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(ledger *LedgerService) *TrackerService {
	return NewTrackerService(ledger, insight.NewRuleBasedAdvisor(), insight.NewLinearTrendPredictor())
}

func TestTracker_Preview(t *testing.T) {
	_, ledger, tracker := newSQLiteServices(t)

	a, err := tracker.Preview(insight.Usage{ElectricityKWh: 150})
	require.NoError(t, err)
	assert.Equal(t, 123.0, a.Breakdown.Total)
	assert.Equal(t, 75, a.Score)
	require.Len(t, a.Suggestions, 2)
	assert.Equal(t, insight.SuggestElectricity, a.Suggestions[0].Kind)
	assert.Equal(t, insight.SuggestExcellent, a.Suggestions[1].Kind)

	history, err := ledger.History(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, history, "preview must not persist")

	_, err = tracker.Preview(insight.Usage{PetrolLiters: -1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestTracker_RejectsOverflowingUsage(t *testing.T) {
	_, ledger, tracker := newSQLiteServices(t)
	ctx := context.Background()
	huge := insight.Usage{PetrolLiters: 1e308}

	assert.NotPanics(t, func() {
		_, err := tracker.Preview(huge)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	_, err := tracker.Calculate(ctx, auth.Session{Username: "alice"}, huge)
	require.ErrorIs(t, err, common.ErrInvalidInput)

	history, err := ledger.History(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTracker_CalculateFlow(t *testing.T) {
	_, _, tracker := newSQLiteServices(t)
	ctx := context.Background()
	alice := auth.Session{Username: "alice"}

	r, err := tracker.Calculate(ctx, alice, insight.Usage{ElectricityKWh: 100})
	require.NoError(t, err)
	assert.Equal(t, 82.0, r.Breakdown.Total)
	assert.Equal(t, []float64{82}, r.History)
	assert.False(t, r.Prediction.Available)
	assert.Equal(t, NotEnoughDataMessage, r.Prediction.Message)

	r, err = tracker.Calculate(ctx, alice, insight.Usage{ElectricityKWh: 200})
	require.NoError(t, err)
	assert.Equal(t, []float64{82, 164}, r.History)
	require.True(t, r.Prediction.Available)
	assert.InDelta(t, 246, r.Prediction.Value, 1e-9)
	assert.Equal(t, []models.RankEntry{{UserName: "alice", Emission: 82}}, r.Ranking)

	_, err = tracker.Calculate(ctx, auth.Session{Username: "bob"}, insight.Usage{FoodExpense: 1000})
	require.NoError(t, err)

	ins, err := tracker.Insights(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []models.RankEntry{{UserName: "bob", Emission: 5}, {UserName: "alice", Emission: 82}}, ins.Ranking)
	assert.Equal(t, []float64{82, 164}, ins.History)

	p, err := tracker.Predict(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, ins.Prediction, p)

	history, err := tracker.History(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, ins.History, history)

	ranking, err := tracker.Ranking(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, ins.Ranking, ranking)
}

func TestTracker_HistoryAndRankingSkipPrediction(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeEmissionsRepo{history: []float64{1.234, 5}, ranking: []models.RankEntry{{UserName: "alice", Emission: 1.234}}}
	tracker := newTracker(NewLedgerService(db, &fakeRepoManager{e: repo}))
	ctx := context.Background()
	alice := auth.Session{Username: "alice"}

	history, err := tracker.History(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.23, 5}, history)
	assert.Equal(t, 1, repo.historyCalls)
	assert.Equal(t, 0, repo.rankingCalls)

	ranking, err := tracker.Ranking(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []models.RankEntry{{UserName: "alice", Emission: 1.23}}, ranking)
	assert.Equal(t, 1, repo.historyCalls)
	assert.Equal(t, 1, repo.rankingCalls)

	_, err = tracker.History(ctx, auth.Session{})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	_, err = tracker.Ranking(ctx, auth.Session{})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTracker_CalculateRejectsNegativeWithoutRecording(t *testing.T) {
	_, ledger, tracker := newSQLiteServices(t)
	ctx := context.Background()

	_, err := tracker.Calculate(ctx, auth.Session{Username: "alice"}, insight.Usage{FoodExpense: -5})
	require.ErrorIs(t, err, common.ErrInvalidInput)

	history, err := ledger.History(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTracker_RequiresSession(t *testing.T) {
	_, _, tracker := newSQLiteServices(t)
	ctx := context.Background()

	_, err := tracker.Calculate(ctx, auth.Session{}, insight.Usage{})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	_, err = tracker.Insights(ctx, auth.Session{})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	_, err = tracker.Predict(ctx, auth.Session{})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTracker_StorageFailureSurfaces(t *testing.T) {
	db, _ := newSQLMockDB(t)
	tracker := newTracker(NewLedgerService(db, &fakeRepoManager{e: &fakeEmissionsRepo{err: common.ErrStorage}}))

	_, err := tracker.Calculate(context.Background(), auth.Session{Username: "alice"}, insight.Usage{ElectricityKWh: 1})
	assert.ErrorIs(t, err, common.ErrStorage)
}
