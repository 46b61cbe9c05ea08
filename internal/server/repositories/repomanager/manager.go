package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/climatetracker/internal/dbx"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/emissions"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/users"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type RepositoryManager interface {
	// Open returns a connection pool configured for the dialect.
	Open(dsn string) (*sql.DB, error)
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Emissions(db dbx.DBTX) emissions.Repository
}

// New returns the RepositoryManager matching driver.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return &PostgresRepositoryManager{}, nil
	case DriverSQLite:
		return &SQLiteRepositoryManager{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
