package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/climatetracker/internal/dbx"
	"github.com/dmitrijs2005/climatetracker/internal/server/migrations"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/emissions"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories. It suits single
// node deployments and development.
type SQLiteRepositoryManager struct{}

// Open returns a single-connection pool for dsn with dbx.SQLitePragmas
// applied. Writes from concurrent requests are serialized by the pool.
func (m *SQLiteRepositoryManager) Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverSQLite, dbx.SQLiteDSN(dsn))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Emissions(db dbx.DBTX) emissions.Repository {
	return emissions.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3", migrations.DirSQLite)
}
