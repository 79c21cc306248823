package engine

import (
	"time"

	"github.com/jadeyalli/agendaInteligente/internal/models"
)

// PreferredSlots is the set of slot indices the user prefers to be
// scheduled in. If the request carries explicit preferred ranges, those are
// used directly; otherwise a fallback of dayStart-dayEnd is generated on
// every active day of the week.
func PreferredSlots(h *Horizon, ranges []models.TimeRangeInput, allowedDays map[int]bool, dayStart, dayEnd [2]int) (map[int]struct{}, error) {
	preferred := make(map[int]struct{})

	if len(ranges) > 0 {
		for _, r := range ranges {
			start, err := parseISOInZone(r.Start, h.Zone)
			if err != nil {
				return nil, err
			}
			end, err := parseISOInZone(r.End, h.Zone)
			if err != nil {
				return nil, err
			}
			a, b := h.SlotsCovering(start, end)
			for s := a; s < b; s++ {
				preferred[s] = struct{}{}
			}
		}
		return preferred, nil
	}

	cur := dateOnly(h.Start)
	for cur.Before(h.End) {
		if allowedDays[isoWeekday(cur)] {
			a := time.Date(cur.Year(), cur.Month(), cur.Day(), dayStart[0], dayStart[1], 0, 0, h.Zone)
			b := time.Date(cur.Year(), cur.Month(), cur.Day(), dayEnd[0], dayEnd[1], 0, 0, h.Zone)
			if !b.After(a) {
				a = dateOnly(cur)
				b = a.AddDate(0, 0, 1)
			}
			sa, sb := h.SlotsCovering(a, b)
			for s := sa; s < sb; s++ {
				preferred[s] = struct{}{}
			}
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return preferred, nil
}
