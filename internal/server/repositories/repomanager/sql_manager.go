// Package repomanager opens the account database and vends repositories bound
// to it. PostgreSQL (pgx) is used for postgres:// DSNs, SQLite otherwise.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoauth/internal/dbx"
	"github.com/dmitrijs2005/todoauth/internal/server/migrations"
	"github.com/dmitrijs2005/todoauth/internal/server/repositories/accounts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Dialect ties a database/sql driver to its goose dialect and migration dir.
type Dialect struct {
	Driver        string
	GooseDialect  string
	MigrationsDir string
}

var (
	Postgres = Dialect{Driver: "pgx", GooseDialect: "postgres", MigrationsDir: migrations.DirPostgres}
	SQLite   = Dialect{Driver: "sqlite", GooseDialect: "sqlite3", MigrationsDir: migrations.DirSQLite}
)

// DialectForDSN picks Postgres for postgres:// and postgresql:// URLs and
// SQLite for everything else (file paths and file: URIs).
func DialectForDSN(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// SQLRepositoryManager vends SQL-backed repositories and runs the
// migrations of its dialect.
type SQLRepositoryManager struct {
	dialect Dialect
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dialect.MigrationsDir); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for d.
func NewSQLRepositoryManager(d Dialect) RepositoryManager {
	return &SQLRepositoryManager{dialect: d}
}

// Open connects to dsn, waits for the database to answer and brings the
// schema up to date. The caller owns the returned *sql.DB.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	d := DialectForDSN(dsn)

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", d.Driver, err)
	}

	if err := dbx.PingWithRetry(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", d.Driver, err)
	}

	m := NewSQLRepositoryManager(d)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return db, m, nil
}
