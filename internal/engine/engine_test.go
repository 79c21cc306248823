package engine

import (
	"context"
	"testing"

	"github.com/jadeyalli/agendaInteligente/internal/config"
	"github.com/jadeyalli/agendaInteligente/internal/models"
)

func testSolverConfig() config.SolverConfig {
	return config.SolverConfig{MaxSeconds: 5, Workers: 8, CandidateTruncation: 300}
}

func testWeights() models.WeightsInput {
	return models.WeightsInput{
		Move:                 models.WeightPair{UnI: 20, InU: 10},
		DistancePerSlot:      models.WeightPair{UnI: 4, InU: 1},
		OffPreferencePerSlot: models.WeightPair{UnI: 1, InU: 3},
		CrossDayPerEvent:     models.WeightPair{UnI: 2, InU: 1},
	}
}

func TestSolve_HardConflictShortCircuitsSolver(t *testing.T) {
	req := models.SolveRequest{
		User:    models.UserInput{ID: "u1", Timezone: "America/Mexico_City"},
		Horizon: models.HorizonInput{Start: "2026-08-03T00:00:00", End: "2026-08-04T00:00:00", SlotMinutes: 30},
		Events: models.EventsInput{
			Fixed: []models.FixedEventInput{
				{ID: "f1", Start: "2026-08-03T09:00:00", End: "2026-08-03T10:00:00"},
				{ID: "f2", Start: "2026-08-03T09:30:00", End: "2026-08-03T10:30:00"},
			},
		},
		Weights: testWeights(),
	}

	resp, err := Solve(context.Background(), req, testSolverConfig())
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if len(resp.Diagnostics.HardConflicts) != 1 {
		t.Fatalf("expected exactly one hard conflict, got %v", resp.Diagnostics.HardConflicts)
	}
	if resp.Score != nil {
		t.Errorf("expected nil score for an infeasible UI/UI conflict, got %v", *resp.Score)
	}
}

func TestSolve_NoFeasibleCandidatesMarksUnplaced(t *testing.T) {
	req := models.SolveRequest{
		User:    models.UserInput{ID: "u1", Timezone: "America/Mexico_City"},
		Horizon: models.HorizonInput{Start: "2026-08-03T00:00:00", End: "2026-08-04T00:00:00", SlotMinutes: 30},
		Events: models.EventsInput{
			New: []models.FlexibleEventInput{
				{ID: "n1", Priority: "UnI", DurationMin: 30, Window: "RANGO",
					WindowStart: "2026-08-05T00:00:00", WindowEnd: "2026-08-06T00:00:00"},
			},
		},
		Weights: testWeights(),
	}

	resp, err := Solve(context.Background(), req, testSolverConfig())
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if len(resp.Unplaced) != 1 || resp.Unplaced[0].ID != "n1" {
		t.Fatalf("expected n1 unplaced for a window entirely outside the horizon, got %+v", resp.Unplaced)
	}
	if resp.Unplaced[0].Reason != "NoFeasibleCandidates" {
		t.Errorf("expected reason NoFeasibleCandidates, got %s", resp.Unplaced[0].Reason)
	}
}

func TestSolve_InvalidTimezoneErrors(t *testing.T) {
	req := models.SolveRequest{
		User:    models.UserInput{ID: "u1", Timezone: "Not/A_Zone"},
		Horizon: models.HorizonInput{Start: "2026-08-03T00:00:00", End: "2026-08-04T00:00:00", SlotMinutes: 30},
		Weights: testWeights(),
	}
	if _, err := Solve(context.Background(), req, testSolverConfig()); err == nil {
		t.Error("expected an error for an invalid IANA timezone")
	}
}

func TestResolveActiveDays_AllowWeekendFallback(t *testing.T) {
	days := resolveActiveDays(models.PolicyInput{})
	for d := 0; d <= 6; d++ {
		if !days[d] {
			t.Errorf("expected all 7 days active when no policy section is given, day %d missing", d)
		}
	}

	falseVal := false
	days = resolveActiveDays(models.PolicyInput{AllowWeekend: &falseVal})
	for d := 0; d <= 4; d++ {
		if !days[d] {
			t.Errorf("expected weekday %d to be active", d)
		}
	}
	if days[5] || days[6] {
		t.Errorf("expected allowWeekend=false to deactivate Saturday and Sunday")
	}

	days = resolveActiveDays(models.PolicyInput{ActiveDays: []int{1, 3}, AllowWeekend: &falseVal})
	if len(days) != 2 || !days[1] || !days[3] {
		t.Errorf("expected explicit activeDays to win over allowWeekend, got %v", days)
	}
}
