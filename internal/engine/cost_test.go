package engine

import (
	"testing"
	"time"
)

func TestWeightSet_For(t *testing.T) {
	w := WeightSet{UnI: 4, InU: 1}
	if got := w.For("UnI"); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
	if got := w.For("InU"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := w.For("anything-else"); got != 4 {
		t.Errorf("expected unknown priority to default to UnI weight, got %d", got)
	}
}

func TestCostModel_Evaluate(t *testing.T) {
	m := CostModel{
		Move:            WeightSet{UnI: 20, InU: 10},
		DistancePerSlot: WeightSet{UnI: 4, InU: 1},
		OffPreference:   WeightSet{UnI: 1, InU: 3},
		CrossDay:        WeightSet{UnI: 2, InU: 1},
	}

	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, loc)
	h := &Horizon{Zone: loc, Start: start, SlotMinutes: 30}

	ev := FlexibleEvent{ID: "e1", Priority: "UnI", DurationSlots: 2}
	preferred := map[int]struct{}{0: {}, 1: {}}

	c := m.Evaluate(h, ev, 0, 0, preferred)
	if c.Dist != 0 || c.OffPref != 0 || c.Move != 0 {
		t.Fatalf("expected zero cost for a start fully inside the preferred window at now, got %+v", c)
	}

	c2 := m.Evaluate(h, ev, 5, 0, preferred)
	if c2.Dist != 20 {
		t.Errorf("expected dist cost 5*4=20, got %d", c2.Dist)
	}
	if c2.OffPref != 2 {
		t.Errorf("expected both slots off-preference (2*1=2), got %d", c2.OffPref)
	}

	current := 0
	evMovable := FlexibleEvent{ID: "e2", Priority: "InU", DurationSlots: 1, CurrentStartSlot: &current}
	c3 := m.Evaluate(h, evMovable, 3, 0, preferred)
	if c3.Move != 10 {
		t.Errorf("expected move cost 10 for a repositioned movable event, got %d", c3.Move)
	}

	c4 := m.Evaluate(h, evMovable, 0, 0, preferred)
	if c4.Move != 0 {
		t.Errorf("expected no move cost when the event keeps its current slot, got %d", c4.Move)
	}
}

func TestCrossesDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	start := time.Date(2026, 8, 3, 0, 0, 0, 0, loc)
	h := &Horizon{Zone: loc, Start: start, SlotMinutes: 30}

	// slot 47 is 23:30; with duration 2 the event ends at slot 49 (00:30 next day).
	if !crossesDay(h, 47, 2) {
		t.Errorf("expected a slot spanning midnight to cross a day")
	}
	if crossesDay(h, 18, 2) {
		t.Errorf("expected a mid-morning slot not to cross a day")
	}
}
