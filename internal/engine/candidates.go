package engine

import (
	"math"
	"sort"
	"time"
)

// CandidateBuilder runs the filter chain that narrows a flexible event's
// scheduling window down to the concrete slots it could legally start in.
type CandidateBuilder struct {
	Horizon       *Horizon
	AllowedDays   map[int]bool
	BufferSlots   int
	NowSlot       int
	Preferred     map[int]struct{}
	FixedBlocking []FixedEvent
	Truncation    int
}

// Build returns the sorted, truncated candidate starts for one event: gross
// window, horizon-fit, active-day, lead-time, fixed-collision,
// prefer-preferred-if-possible, in that order.
func (b *CandidateBuilder) Build(ev FlexibleEvent) []int {
	latestStart := b.Horizon.TotalSlots() - ev.DurationSlots
	bufferForEvent := 0
	if !ev.Overlap {
		bufferForEvent = b.BufferSlots
		latestStart -= b.BufferSlots
	}
	if latestStart < 0 {
		return nil
	}

	starts := b.expandWindow(ev)
	starts = filterRange(starts, 0, latestStart)
	starts = b.filterActiveDays(starts, ev.DurationSlots)
	starts = b.filterLeadTime(starts, ev)

	if !ev.Overlap && len(b.FixedBlocking) > 0 {
		starts = removeConflicting(starts, ev.DurationSlots, b.FixedBlocking, bufferForEvent)
	}

	starts = b.preferPreferredIfPossible(starts, ev.DurationSlots)

	sort.Ints(starts)
	if b.Truncation > 0 && len(starts) > b.Truncation {
		starts = starts[:b.Truncation]
	}
	return starts
}

func (b *CandidateBuilder) expandWindow(ev FlexibleEvent) []int {
	h := b.Horizon
	switch ev.Window {
	case WindowSoon:
		a := maxInt(b.NowSlot, 0)
		span := int(math.Ceil(float64(48*60) / float64(h.SlotMinutes)))
		end := minInt(b.NowSlot+span, h.TotalSlots())
		return rangeInts(a, end)

	case WindowWeek:
		monday := dateOnly(h.Start).AddDate(0, 0, -isoWeekday(h.Start))
		sundayEnd := monday.AddDate(0, 0, 7)
		a := maxInt(h.SlotOf(monday), 0)
		end := minInt(h.SlotOf(sundayEnd), h.TotalSlots())
		return rangeInts(a, end)

	case WindowMonth:
		start := h.Start
		monthStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, h.Zone)
		nextMonth := monthStart.AddDate(0, 1, 0)
		a := maxInt(h.SlotOf(monthStart), 0)
		end := minInt(h.SlotOf(nextMonth), h.TotalSlots())
		return rangeInts(a, end)

	case WindowRange:
		if ev.WindowStart == nil || ev.WindowEnd == nil {
			return nil
		}
		a := maxInt(*ev.WindowStart, 0)
		end := minInt(*ev.WindowEnd, h.TotalSlots())
		return rangeInts(a, end)

	default:
		return rangeInts(0, h.TotalSlots())
	}
}

func (b *CandidateBuilder) filterActiveDays(starts []int, dur int) []int {
	if len(b.AllowedDays) >= 7 {
		return starts
	}
	out := make([]int, 0, len(starts))
	for _, s := range starts {
		st := b.Horizon.SlotToTime(s)
		en := b.Horizon.SlotToTime(s + dur - 1)
		if !b.AllowedDays[isoWeekday(st)] {
			continue
		}
		if !b.AllowedDays[isoWeekday(en)] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// filterLeadTime enforces the minimum-lead-time policy, but re-admits an
// already-scheduled movable event's current slot even when that slot now
// falls before the lead-time cutoff, provided that slot is still among the
// starts that reached this filter. A current slot already removed by the
// window, horizon-fit or active-day filters is not re-admitted.
func (b *CandidateBuilder) filterLeadTime(starts []int, ev FlexibleEvent) []int {
	if b.NowSlot <= 0 {
		return starts
	}
	present := make(map[int]struct{}, len(starts))
	for _, s := range starts {
		present[s] = struct{}{}
	}

	seen := make(map[int]struct{}, len(starts))
	var out []int
	for _, s := range starts {
		if s >= b.NowSlot {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	if ev.CurrentStartSlot != nil && *ev.CurrentStartSlot < b.NowSlot {
		if _, inWindow := present[*ev.CurrentStartSlot]; inWindow {
			if _, already := seen[*ev.CurrentStartSlot]; !already {
				out = append(out, *ev.CurrentStartSlot)
			}
		}
	}
	sort.Ints(out)
	return out
}

func (b *CandidateBuilder) preferPreferredIfPossible(starts []int, dur int) []int {
	var preferred []int
	for _, s := range starts {
		ok := true
		for t := s; t < s+dur; t++ {
			if _, in := b.Preferred[t]; !in {
				ok = false
				break
			}
		}
		if ok {
			preferred = append(preferred, s)
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	return starts
}

func removeConflicting(starts []int, dur int, fixed []FixedEvent, bufferSlots int) []int {
	if len(fixed) == 0 {
		return starts
	}
	out := make([]int, 0, len(starts))
	for _, s := range starts {
		end := s + dur
		conflict := false
		for _, f := range fixed {
			if !(end+bufferSlots <= f.StartSlot || s >= f.EndSlot+bufferSlots) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, s)
		}
	}
	return out
}

func filterRange(starts []int, lo, hi int) []int {
	out := make([]int, 0, len(starts))
	for _, s := range starts {
		if s >= lo && s <= hi {
			out = append(out, s)
		}
	}
	return out
}

func rangeInts(a, b int) []int {
	if b <= a {
		return nil
	}
	out := make([]int, 0, b-a)
	for i := a; i < b; i++ {
		out = append(out, i)
	}
	return out
}
