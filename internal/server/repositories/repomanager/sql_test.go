package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/users"
	"github.com/dmitrijs2005/userbook/internal/server/storage"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestNewSQLRepositoryManager(t *testing.T) {
	m, err := NewSQLRepositoryManager(storage.DialectPostgres)
	require.NoError(t, err)
	var _ RepositoryManager = m

	_, err = NewSQLRepositoryManager(storage.Dialect("oracle"))
	require.Error(t, err)
}

func TestUsers_ReturnsRepository(t *testing.T) {
	db, _ := newDB(t)
	m := &SQLRepositoryManager{dialect: storage.DialectPostgres}

	u := m.Users(db)
	require.NotNil(t, u)
	var _ users.Repository = u
}

func TestRunMigrations_UsesDialectDirectory(t *testing.T) {
	db, _ := newDB(t)

	var gotDir string
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	t.Cleanup(func() { gooseUpContext = orig })

	m := &SQLRepositoryManager{dialect: storage.DialectPostgres}
	require.NoError(t, m.RunMigrations(context.Background(), db))
	assert.Equal(t, "postgres", gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	t.Cleanup(func() { gooseUpContext = orig })

	m := &SQLRepositoryManager{dialect: storage.DialectSQLite}
	err := m.RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunMigrations_SQLite_CreatesUsersTable(t *testing.T) {
	db, dialect, err := storage.Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := NewSQLRepositoryManager(dialect)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(context.Background(), db))
	// second run is a no-op
	require.NoError(t, m.RunMigrations(context.Background(), db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 0, n)
}
