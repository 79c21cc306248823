package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jadeyalli/agendaInteligente/internal/models"
)

// Repositories holds all repository instances. The engine persists exactly
// one kind of row — an audit trail of solve invocations — so this is
// narrower than a multi-entity application repository layer, but keeps the
// same aggregate-struct shape so callers wire it the same way.
type Repositories struct {
	SolveRun *SolveRunRepository
}

// NewRepositories creates all repositories for the given driver.
func NewRepositories(db *sql.DB, driver string) *Repositories {
	return &Repositories{
		SolveRun: &SolveRunRepository{db: db, driver: driver},
	}
}

// q converts PostgreSQL-style placeholders ($1, $2) to SQLite-style (?) if
// the repository's driver is sqlite.
func q(driver, query string) string {
	if driver == "sqlite" {
		re := regexp.MustCompile(`\$\d+`)
		return re.ReplaceAllString(query, "?")
	}
	return query
}

// SolveRunRepository records one row per solve invocation.
type SolveRunRepository struct {
	db     *sql.DB
	driver string
}

// Create inserts a solve-run audit row.
func (r *SolveRunRepository) Create(ctx context.Context, run *models.SolveRun) error {
	query := q(r.driver, `
		INSERT INTO solve_runs (id, user_id, timezone, placed, moved, unplaced, score, summary, request, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	_, err := r.db.ExecContext(ctx, query,
		run.ID, run.UserID, run.Timezone, run.Placed, run.Moved, run.Unplaced,
		run.Score, run.Summary, run.Request, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert solve run: %w", err)
	}
	return nil
}

// GetByUserID returns the most recent solve runs for a user, newest first.
func (r *SolveRunRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]*models.SolveRun, error) {
	query := q(r.driver, `
		SELECT id, user_id, timezone, placed, moved, unplaced, score, summary, request, created_at
		FROM solve_runs WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`)
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query solve runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.SolveRun
	for rows.Next() {
		run := &models.SolveRun{}
		if err := rows.Scan(
			&run.ID, &run.UserID, &run.Timezone, &run.Placed, &run.Moved, &run.Unplaced,
			&run.Score, &run.Summary, &run.Request, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan solve run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
