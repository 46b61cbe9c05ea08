package repomanager

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/climatetracker/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRunMigrations_CreatesSchema(t *testing.T) {
	m := &SQLiteRepositoryManager{}
	db, err := m.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx, db))

	_, err = m.Users(db).Create(ctx, &models.User{UserName: "alice", Salt: []byte("s"), Verifier: []byte("v")})
	require.NoError(t, err)
	require.NoError(t, m.Emissions(db).Append(ctx, "alice", 12.5))

	history, err := m.Emissions(db).History(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5}, history)

	// migrations are idempotent
	require.NoError(t, m.RunMigrations(ctx, db))
}

func TestSQLiteOpen_EnforcesForeignKeys(t *testing.T) {
	m := &SQLiteRepositoryManager{}
	db, err := m.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx, db))

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	assert.Error(t, m.Emissions(db).Append(ctx, "ghost", 1))
}

func TestSQLiteOpen_FileDatabaseConcurrentAppends(t *testing.T) {
	m := &SQLiteRepositoryManager{}
	db, err := m.Open("file:" + filepath.Join(t.TempDir(), "climate.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx, db))

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	_, err = m.Users(db).Create(ctx, &models.User{UserName: "alice", Salt: []byte("s"), Verifier: []byte("v")})
	require.NoError(t, err)

	const writers = 64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			assert.NoError(t, m.Emissions(db).Append(ctx, "alice", v))
		}(float64(i))
	}
	wg.Wait()

	history, err := m.Emissions(db).History(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, history, writers)
}

func TestPostgresOpen_IsLazy(t *testing.T) {
	db, err := (&PostgresRepositoryManager{}).Open("postgres://user:pw@127.0.0.1:1/none")
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
