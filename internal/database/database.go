package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/jadeyalli/agendaInteligente/internal/config"
)

// New opens the audit database connection for the configured driver.
func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	driverName := "postgres"
	if cfg.Driver == "sqlite" {
		driverName = "sqlite"
	}

	db, err := sql.Open(driverName, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// The engine has exactly one persisted table: no global state is held
// between invocations (spec.md §5) beyond this best-effort audit trail, so
// there is no versioned migrations directory to walk — just one idempotent
// schema statement per driver.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS solve_runs (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	timezone   TEXT NOT NULL,
	placed     INTEGER NOT NULL,
	moved      INTEGER NOT NULL,
	unplaced   INTEGER NOT NULL,
	score      INTEGER,
	summary    TEXT NOT NULL,
	request    TEXT,
	created_at TEXT NOT NULL
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS solve_runs (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	timezone   TEXT NOT NULL,
	placed     INTEGER NOT NULL,
	moved      INTEGER NOT NULL,
	unplaced   INTEGER NOT NULL,
	score      INTEGER,
	summary    TEXT NOT NULL,
	request    JSONB,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
)`

// Migrate ensures the audit schema exists.
func Migrate(db *sql.DB, driver string) error {
	schema := postgresSchema
	if driver == "sqlite" {
		schema = sqliteSchema
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}
	return nil
}
