package engine

import (
	"fmt"
	"time"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/jadeyalli/agendaInteligente/internal/models"
)

// Project turns a raw solver result into the response contract, formatting
// every instant back into ISO-8601 wall-clock time in the horizon's zone.
// score is computed as the exact integer sum of the chosen candidates' costs
// rather than from the solver's floating-point objective value, which can
// carry small rounding drift off an exact integer optimum.
func Project(h *Horizon, flex []FlexibleEvent, immediateUnplaced []models.UnplacedEvent, result *SolveResult, costs map[CandidateKey]Cost) models.SolveResponse {
	unplaced := append([]models.UnplacedEvent{}, immediateUnplaced...)

	if result == nil || (result.Status != cmpb.CpSolverStatus_OPTIMAL && result.Status != cmpb.CpSolverStatus_FEASIBLE) {
		for _, ev := range flex {
			unplaced = append(unplaced, models.UnplacedEvent{ID: ev.ID, Reason: "NoSolutionFound"})
		}
		return models.SolveResponse{
			Placed:   []models.PlacedEvent{},
			Moved:    []models.MovedEvent{},
			Unplaced: unplaced,
			Score:    nil,
			Diagnostics: models.Diagnostics{
				HardConflicts: []string{"Infeasible model"},
				Summary:       "No solution",
			},
		}
	}

	byID := make(map[string]FlexibleEvent, len(flex))
	for _, ev := range flex {
		byID[ev.ID] = ev
	}

	placed := []models.PlacedEvent{}
	moved := []models.MovedEvent{}
	score := 0

	for _, a := range result.Assignments {
		ev := byID[a.EventID]
		if !a.OK {
			unplaced = append(unplaced, models.UnplacedEvent{ID: a.EventID, Reason: "NoChosenStart"})
			continue
		}
		start := h.SlotToTime(a.Start)
		end := h.SlotToTime(a.Start + ev.DurationSlots)
		placed = append(placed, models.PlacedEvent{
			ID:    ev.ID,
			Start: start.Format(time.RFC3339),
			End:   end.Format(time.RFC3339),
		})
		score += costs[CandidateKey{ev.ID, a.Start}].Total
		if ev.CurrentStartSlot != nil && *ev.CurrentStartSlot != a.Start {
			moved = append(moved, models.MovedEvent{
				ID:        ev.ID,
				FromStart: h.SlotToTime(*ev.CurrentStartSlot).Format(time.RFC3339),
				ToStart:   start.Format(time.RFC3339),
				Reason:    "RepositionedByPolicy",
			})
		}
	}

	return models.SolveResponse{
		Placed:   placed,
		Moved:    moved,
		Unplaced: unplaced,
		Score:    &score,
		Diagnostics: models.Diagnostics{
			HardConflicts: []string{},
			Summary:       fmt.Sprintf("Placed %d, moved %d, unplaced %d", len(placed), len(moved), len(unplaced)),
		},
	}
}
