package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/climatetracker/internal/dbx"
	"github.com/dmitrijs2005/climatetracker/internal/server/config"
	"github.com/dmitrijs2005/climatetracker/internal/server/models"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/emissions"
	refreshtokensrepo "github.com/dmitrijs2005/climatetracker/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/climatetracker/internal/server/repositories/sqlitetest"
	usersrepo "github.com/dmitrijs2005/climatetracker/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "exports",
	}
}

// newSQLiteServices wires real services over a migrated in-memory database
// holding the accounts alice and bob.
func newSQLiteServices(t *testing.T) (*UserService, *LedgerService, *TrackerService) {
	t.Helper()
	db := sqlitetest.Open(t)
	sqlitetest.SeedUsers(t, db, "alice", "bob")
	rm := &repomanager.SQLiteRepositoryManager{}
	ledger := NewLedgerService(db, rm)
	return NewUserService(db, rm, testConfig()), ledger, newTracker(ledger)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr error

	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

type fakeEmissionsRepo struct {
	err     error
	history []float64
	ranking []models.RankEntry

	historyCalls int
	rankingCalls int
}

func (f *fakeEmissionsRepo) Append(context.Context, string, float64) error { return f.err }
func (f *fakeEmissionsRepo) History(context.Context, string) ([]float64, error) {
	f.historyCalls++
	return f.history, f.err
}
func (f *fakeEmissionsRepo) Ranking(context.Context) ([]models.RankEntry, error) {
	f.rankingCalls++
	return f.ranking, f.err
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	e *fakeEmissionsRepo
}

func (m *fakeRepoManager) Open(string) (*sql.DB, error)                           { return nil, nil }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Emissions(db dbx.DBTX) emissions.Repository             { return m.e }
