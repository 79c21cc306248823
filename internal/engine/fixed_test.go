package engine

import (
	"testing"

	"github.com/jadeyalli/agendaInteligente/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestIngestFixed_BlocksCapacityDefaults(t *testing.T) {
	h := mustHorizon(t, "2026-08-03T00:00:00", "2026-08-04T00:00:00", 30)

	inputs := []models.FixedEventInput{
		{ID: "f1", Start: "2026-08-03T09:00:00", End: "2026-08-03T10:00:00"},
		{ID: "f2", Start: "2026-08-03T11:00:00", End: "2026-08-03T12:00:00", CanOverlap: boolPtr(true)},
		{ID: "f3", Start: "2026-08-03T13:00:00", End: "2026-08-03T14:00:00", IsInPerson: boolPtr(false)},
	}

	events, err := IngestFixed(h, inputs)
	if err != nil {
		t.Fatalf("IngestFixed failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if !events[0].BlocksCapacity {
		t.Errorf("f1 defaults (in-person, no overlap) should block capacity")
	}
	if events[1].BlocksCapacity {
		t.Errorf("f2 (canOverlap=true) should not block capacity")
	}
	if events[2].BlocksCapacity {
		t.Errorf("f3 (isInPerson=false) should not block capacity")
	}
}

func TestHardConflicts_DetectsOverlap(t *testing.T) {
	blocking := []FixedEvent{
		{ID: "a", StartSlot: 10, EndSlot: 20, BlocksCapacity: true},
		{ID: "b", StartSlot: 15, EndSlot: 25, BlocksCapacity: true},
	}
	conflicts := HardConflicts(blocking)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d: %v", len(conflicts), conflicts)
	}
}

func TestHardConflicts_NoOverlapIsClean(t *testing.T) {
	blocking := []FixedEvent{
		{ID: "a", StartSlot: 10, EndSlot: 20, BlocksCapacity: true},
		{ID: "b", StartSlot: 20, EndSlot: 25, BlocksCapacity: true},
	}
	if conflicts := HardConflicts(blocking); len(conflicts) != 0 {
		t.Errorf("expected no conflicts for adjacent non-overlapping events, got %v", conflicts)
	}
}
