package services

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RankingTakesMinimumPerUser(t *testing.T) {
	_, ledger, _ := newSQLiteServices(t)
	ctx := context.Background()

	require.NoError(t, ledger.Record(ctx, "alice", 100))
	require.NoError(t, ledger.Record(ctx, "alice", 50))
	require.NoError(t, ledger.Record(ctx, "bob", 80))

	ranking, err := ledger.Ranking(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.RankEntry{{UserName: "alice", Emission: 50}, {UserName: "bob", Emission: 80}}, ranking)
}

func TestLedger_HistoryIsPerUserAndOrdered(t *testing.T) {
	_, ledger, _ := newSQLiteServices(t)
	ctx := context.Background()

	require.NoError(t, ledger.Record(ctx, "alice", 30))
	require.NoError(t, ledger.Record(ctx, "alice", 10))
	before, err := ledger.History(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, ledger.Record(ctx, "bob", 5))
	require.NoError(t, ledger.Record(ctx, "alice", 20))

	after, err := ledger.History(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 10}, before)
	assert.Equal(t, []float64{30, 10, 20}, after)

	empty, err := ledger.History(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLedger_RecordRejectsInvalidTotals(t *testing.T) {
	_, ledger, _ := newSQLiteServices(t)
	ctx := context.Background()

	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ledger.Record(ctx, "alice", v), common.ErrInvalidInput)
	}
	assert.ErrorIs(t, ledger.Record(ctx, "", 1), common.ErrValidation)
	require.NoError(t, ledger.Record(ctx, "alice", 0))
}

func TestLedger_ConcurrentRecords(t *testing.T) {
	_, ledger, _ := newSQLiteServices(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			assert.NoError(t, ledger.Record(ctx, "alice", v))
		}(float64(i))
	}
	wg.Wait()

	history, err := ledger.History(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, history, 20)
}

func TestLedger_StorageErrors(t *testing.T) {
	db, _ := newSQLMockDB(t)
	ledger := NewLedgerService(db, &fakeRepoManager{e: &fakeEmissionsRepo{err: common.ErrStorage}})
	ctx := context.Background()

	assert.ErrorIs(t, ledger.Record(ctx, "alice", 1), common.ErrStorage)
	_, err := ledger.History(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrStorage)
	_, err = ledger.Ranking(ctx)
	assert.ErrorIs(t, err, common.ErrStorage)
}
