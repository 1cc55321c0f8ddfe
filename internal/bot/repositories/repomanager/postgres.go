// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eosbot/internal/bot/migrations"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/accountorders"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/ramorders"
	"github.com/dmitrijs2005/eosbot/internal/bot/repositories/users"
	"github.com/dmitrijs2005/eosbot/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// AccountOrders returns an accountorders.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) AccountOrders(db dbx.DBTX) accountorders.Repository {
	return accountorders.NewPostgresRepository(db)
}

// RAMOrders returns a ramorders.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RAMOrders(db dbx.DBTX) ramorders.Repository {
	return ramorders.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
