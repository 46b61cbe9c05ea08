// Package emissions is the append-only store of per-user emission samples.
//
// Rows are never updated or deleted. Insertion order is preserved through a
// monotonically increasing sequence column and is the only ordering key of a
// user's history.
package emissions

import (
	"context"

	"github.com/dmitrijs2005/climatetracker/internal/server/models"
)

type Repository interface {
	// Append stores a new sample for userName.
	Append(ctx context.Context, userName string, totalEmission float64) error

	// History returns userName's samples in insertion order.
	History(ctx context.Context, userName string) ([]float64, error)

	// Ranking returns every user's minimum sample, ascending. Ties are
	// ordered by username.
	Ranking(ctx context.Context) ([]models.RankEntry, error)
}

func scanHistory(rows rowScanner) ([]float64, error) {
	history := make([]float64, 0)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		history = append(history, v)
	}
	return history, rows.Err()
}

func scanRanking(rows rowScanner) ([]models.RankEntry, error) {
	ranking := make([]models.RankEntry, 0)
	for rows.Next() {
		var e models.RankEntry
		if err := rows.Scan(&e.UserName, &e.Emission); err != nil {
			return nil, err
		}
		ranking = append(ranking, e)
	}
	return ranking, rows.Err()
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}
