package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jadeyalli/agendaInteligente/internal/models"
	"github.com/jadeyalli/agendaInteligente/internal/repository"
)

// AuditLogService records one row per solve invocation.
type AuditLogService struct {
	repos *repository.Repositories
}

// NewAuditLogService creates a new audit log service.
func NewAuditLogService(repos *repository.Repositories) *AuditLogService {
	return &AuditLogService{repos: repos}
}

// LogSolve records the outcome of a solve invocation. It never blocks the
// caller on storage failures, matching the teacher's audit-log fire-and-forget
// pattern: the insert runs in a background goroutine and a persistence
// failure is only logged, so it does not change the response or the exit code.
func (s *AuditLogService) LogSolve(userID, timezone string, resp *models.SolveResponse, request models.JSONMap) {
	run := &models.SolveRun{
		ID:        uuid.New().String(),
		UserID:    userID,
		Timezone:  timezone,
		Placed:    len(resp.Placed),
		Moved:     len(resp.Moved),
		Unplaced:  len(resp.Unplaced),
		Score:     resp.Score,
		Summary:   resp.Diagnostics.Summary,
		Request:   request,
		CreatedAt: models.Now(),
	}

	go func() {
		if err := s.repos.SolveRun.Create(context.Background(), run); err != nil {
			log.Printf("failed to record solve run: %v (user=%s, placed=%d, unplaced=%d)",
				err, userID, run.Placed, run.Unplaced)
		}
	}()
}

// RecentRuns returns the most recent solve runs recorded for a user.
func (s *AuditLogService) RecentRuns(ctx context.Context, userID string, limit int) ([]*models.SolveRun, error) {
	return s.repos.SolveRun.GetByUserID(ctx, userID, limit)
}
