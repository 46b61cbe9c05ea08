package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/repomanager"
)

// LedgerService is the per-user append-only record of computed monthly
// totals. Each Record is a single-row insert.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager) *LedgerService {
	return &LedgerService{db: db, repomanager: m}
}

// Record appends total to username's history. Negative or non-finite totals
// are rejected with ErrInvalidInput.
func (s *LedgerService) Record(ctx context.Context, username string, total float64) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return common.ErrInvalidInput
	}
	if err := s.repomanager.Emissions(s.db).Append(ctx, username, total); err != nil {
		return fmt.Errorf("error recording emission: %w", err)
	}
	return nil
}

// History returns username's totals oldest first. Unknown users have an
// empty history.
func (s *LedgerService) History(ctx context.Context, username string) ([]float64, error) {
	history, err := s.repomanager.Emissions(s.db).History(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error loading history: %w", err)
	}
	return history, nil
}

// Ranking returns each user's lowest recorded total, ascending.
func (s *LedgerService) Ranking(ctx context.Context) ([]models.RankEntry, error) {
	ranking, err := s.repomanager.Emissions(s.db).Ranking(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading ranking: %w", err)
	}
	return ranking, nil
}
