package emissions

import (
	"context"

	"github.com/dmitrijs2005/climatetracker/internal/dbx"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, userName string, totalEmission float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO emissions (username, total_emission) VALUES (?, ?)`, userName, totalEmission)
	if err != nil {
		return dbx.StorageError(err)
	}
	return nil
}

func (r *SQLiteRepository) History(ctx context.Context, userName string) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT total_emission FROM emissions WHERE username = ? ORDER BY seq ASC`, userName)
	if err != nil {
		return nil, dbx.StorageError(err)
	}
	defer rows.Close()

	history, err := scanHistory(rows)
	if err != nil {
		return nil, dbx.StorageError(err)
	}
	return history, nil
}

func (r *SQLiteRepository) Ranking(ctx context.Context) ([]models.RankEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT username, MIN(total_emission) AS emission FROM emissions
		GROUP BY username
		ORDER BY emission ASC, username ASC`)
	if err != nil {
		return nil, dbx.StorageError(err)
	}
	defer rows.Close()

	ranking, err := scanRanking(rows)
	if err != nil {
		return nil, dbx.StorageError(err)
	}
	return ranking, nil
}
