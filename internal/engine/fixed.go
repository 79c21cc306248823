package engine

import (
	"fmt"

	"github.com/jadeyalli/agendaInteligente/internal/models"
)

// FixedEvent is an immovable calendar event expressed in slot coordinates.
type FixedEvent struct {
	ID             string
	StartSlot      int
	EndSlot        int
	BlocksCapacity bool
}

// IngestFixed converts fixed and newFixed event inputs into slot-indexed
// FixedEvents, dropping any that collapse to an empty interval once clamped
// to the horizon.
func IngestFixed(h *Horizon, inputs []models.FixedEventInput) ([]FixedEvent, error) {
	events := make([]FixedEvent, 0, len(inputs))
	for _, f := range inputs {
		start, err := parseISOInZone(f.Start, h.Zone)
		if err != nil {
			return nil, fmt.Errorf("fixed event %s: %w", f.ID, err)
		}
		end, err := parseISOInZone(f.End, h.Zone)
		if err != nil {
			return nil, fmt.Errorf("fixed event %s: %w", f.ID, err)
		}
		s, e := h.SlotsCovering(start, end)
		if e <= s {
			continue
		}

		isInPerson := boolOr(f.IsInPerson, true)
		canOverlap := boolOr(f.CanOverlap, false)
		blocksCapacity := boolOr(f.BlocksCapacity, true)

		events = append(events, FixedEvent{
			ID:             f.ID,
			StartSlot:      s,
			EndSlot:        e,
			BlocksCapacity: isInPerson && !canOverlap && blocksCapacity,
		})
	}
	return events, nil
}

// BlockingFixed returns the subset of fixed events that occupy capacity.
func BlockingFixed(fixed []FixedEvent) []FixedEvent {
	var out []FixedEvent
	for _, f := range fixed {
		if f.BlocksCapacity {
			out = append(out, f)
		}
	}
	return out
}

// HardConflicts reports every pairwise overlap among capacity-blocking
// fixed events: a starting position no amount of flexible rescheduling can
// resolve.
func HardConflicts(blocking []FixedEvent) []string {
	var conflicts []string
	for i := 0; i < len(blocking); i++ {
		for j := i + 1; j < len(blocking); j++ {
			a, b := blocking[i], blocking[j]
			if !(a.EndSlot <= b.StartSlot || b.EndSlot <= a.StartSlot) {
				conflicts = append(conflicts, fmt.Sprintf("UI/UI conflict: %s vs %s", a.ID, b.ID))
			}
		}
	}
	return conflicts
}
