// Package sqlitetest opens throwaway in-memory SQLite databases with the
// server schema applied. It is meant for tests only.
package sqlitetest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/climatetracker/internal/dbx"
	"github.com/dmitrijs2005/climatetracker/internal/server/migrations"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Open returns a migrated in-memory database that is closed on test cleanup.
// Connections carry the same pragmas and pool size as the server's.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := sql.Open("sqlite", dbx.SQLiteDSN(dsn))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.DirSQLite))

	return db
}

// SeedUsers inserts accounts with dummy credentials so that emission rows
// can reference them.
func SeedUsers(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()

	for _, n := range names {
		_, err := db.ExecContext(context.Background(),
			`INSERT INTO users (username, salt, master_key_verifier) VALUES (?, ?, ?)`,
			n, []byte("salt"), []byte("verifier"))
		require.NoError(t, err)
	}
}
