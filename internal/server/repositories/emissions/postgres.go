package emissions

import (
	"context"

	"github.com/dmitrijs2005/climatetracker/internal/dbx"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, userName string, totalEmission float64) error {
	query :=
		`INSERT INTO emissions (username, total_emission)
		 VALUES ($1, $2)
		 `

	if _, err := r.db.ExecContext(ctx, query, userName, totalEmission); err != nil {
		return dbx.StorageError(err)
	}
	return nil
}

func (r *PostgresRepository) History(ctx context.Context, userName string) ([]float64, error) {
	query :=
		`SELECT total_emission FROM emissions
		 WHERE username = $1
		 ORDER BY seq ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userName)
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

func (r *PostgresRepository) Ranking(ctx context.Context) ([]models.RankEntry, error) {
	query :=
		`SELECT username, MIN(total_emission) AS emission FROM emissions
		 GROUP BY username
		 ORDER BY emission ASC, username ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
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
