package engine

import (
	"fmt"
	"math"

	"github.com/jadeyalli/agendaInteligente/internal/models"
)

// Window names a flexible event's scheduling window.
const (
	WindowSoon  = "PRONTO"
	WindowWeek  = "SEMANA"
	WindowMonth = "MES"
	WindowRange = "RANGO"
)

// FlexibleEvent is a movable or brand-new event awaiting placement.
type FlexibleEvent struct {
	ID               string
	Priority         string
	DurationSlots    int
	Overlap          bool
	CurrentStartSlot *int
	Window           string
	WindowStart      *int
	WindowEnd        *int
}

func durationToSlots(minutes, slotMinutes int) int {
	if slotMinutes <= 0 {
		return 1
	}
	slots := int(math.Ceil(float64(minutes) / float64(slotMinutes)))
	if slots < 1 {
		return 1
	}
	return slots
}

// IngestFlexible converts movable and brand-new flexible event inputs into
// slot-indexed FlexibleEvents. Only movable events carry a current start.
func IngestFlexible(h *Horizon, movable, brandNew []models.FlexibleEventInput) ([]FlexibleEvent, error) {
	events := make([]FlexibleEvent, 0, len(movable)+len(brandNew))

	for _, m := range movable {
		ev, err := toFlexibleEvent(h, m, true)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	for _, n := range brandNew {
		ev, err := toFlexibleEvent(h, n, false)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func toFlexibleEvent(h *Horizon, in models.FlexibleEventInput, allowCurrent bool) (FlexibleEvent, error) {
	isInPerson := boolOr(in.IsInPerson, true)
	canOverlap := boolOr(in.CanOverlap, false)

	var currentStartSlot *int
	if allowCurrent && in.CurrentStart != "" {
		t, err := parseISOInZone(in.CurrentStart, h.Zone)
		if err != nil {
			return FlexibleEvent{}, fmt.Errorf("flexible event %s: %w", in.ID, err)
		}
		s := h.SlotOf(t)
		currentStartSlot = &s
	}

	var windowStart, windowEnd *int
	if in.WindowStart != "" {
		t, err := parseISOInZone(in.WindowStart, h.Zone)
		if err != nil {
			return FlexibleEvent{}, fmt.Errorf("flexible event %s: %w", in.ID, err)
		}
		s := h.SlotOf(t)
		windowStart = &s
	}
	if in.WindowEnd != "" {
		t, err := parseISOInZone(in.WindowEnd, h.Zone)
		if err != nil {
			return FlexibleEvent{}, fmt.Errorf("flexible event %s: %w", in.ID, err)
		}
		s := h.SlotOf(t)
		windowEnd = &s
	}

	return FlexibleEvent{
		ID:               in.ID,
		Priority:         in.Priority,
		DurationSlots:    durationToSlots(in.DurationMin, h.SlotMinutes),
		Overlap:          !isInPerson || canOverlap,
		CurrentStartSlot: currentStartSlot,
		Window:           in.Window,
		WindowStart:      windowStart,
		WindowEnd:        windowEnd,
	}, nil
}
