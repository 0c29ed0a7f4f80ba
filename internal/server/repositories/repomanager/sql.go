// Package repomanager provides a concrete RepositoryManager for the SQL
// stores, wiring together repository constructors and database migrations
// (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userbook/internal/dbx"
	"github.com/dmitrijs2005/userbook/internal/server/migrations"
	"github.com/dmitrijs2005/userbook/internal/server/repositories/users"
	"github.com/dmitrijs2005/userbook/internal/server/storage"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations and
// knows which migration set belongs to its dialect.
type SQLRepositoryManager struct {
	dialect storage.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseDialect maps our dialect onto goose's names.
func gooseDialect(d storage.Dialect) (string, error) {
	switch d {
	case storage.DialectPostgres:
		return "pgx", nil
	case storage.DialectSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migrations for dialect %q", d)
	}
}

// RunMigrations sets up goose with the embedded migrations and applies the
// directory matching the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	dialect, err := gooseDialect(m.dialect)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect storage.Dialect) (RepositoryManager, error) {
	if _, err := gooseDialect(dialect); err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}
