package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jadeyalli/agendaInteligente/internal/config"
	"github.com/jadeyalli/agendaInteligente/internal/models"
)

// Solve runs the full pipeline for one request: ingest, candidate-domain
// construction, CP model construction, solve, and projection. It holds no
// state across invocations — every call starts from the request alone.
func Solve(ctx context.Context, req models.SolveRequest, cfg config.SolverConfig) (*models.SolveResponse, error) {
	loc, err := time.LoadLocation(req.User.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", req.User.Timezone, err)
	}

	start, err := parseISOInZone(req.Horizon.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid horizon start: %w", err)
	}
	end, err := parseISOInZone(req.Horizon.End, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid horizon end: %w", err)
	}

	horizon, err := NewHorizon(req.User.Timezone, start, end, req.Horizon.SlotMinutes)
	if err != nil {
		return nil, err
	}

	policy := req.Policy
	allowedDays := resolveActiveDays(policy)
	dayStart := parseHHMM(policy.DayStart, [2]int{9, 0})
	dayEnd := parseHHMM(policy.DayEnd, [2]int{18, 0})

	bufferSlots := 0
	if policy.EventBufferMinutes > 0 {
		bufferSlots = int(math.Ceil(float64(policy.EventBufferMinutes) / float64(horizon.SlotMinutes)))
	}

	now := time.Now().In(horizon.Zone).Add(time.Duration(policy.SchedulingLeadMinutes) * time.Minute)
	nowSlot := maxInt(0, horizon.NextSlotOf(now))

	preferred, err := PreferredSlots(horizon, req.Availability.Preferred, allowedDays, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid availability: %w", err)
	}

	fixedInputs := make([]models.FixedEventInput, 0, len(req.Events.Fixed)+len(req.Events.NewFixed))
	fixedInputs = append(fixedInputs, req.Events.Fixed...)
	fixedInputs = append(fixedInputs, req.Events.NewFixed...)
	fixed, err := IngestFixed(horizon, fixedInputs)
	if err != nil {
		return nil, fmt.Errorf("invalid fixed events: %w", err)
	}

	blocking := BlockingFixed(fixed)
	if conflicts := HardConflicts(blocking); len(conflicts) > 0 {
		return &models.SolveResponse{
			Placed:   []models.PlacedEvent{},
			Moved:    []models.MovedEvent{},
			Unplaced: []models.UnplacedEvent{},
			Score:    nil,
			Diagnostics: models.Diagnostics{
				HardConflicts: conflicts,
				Summary:       "Infeasible: UI/UI conflict",
			},
		}, nil
	}

	flex, err := IngestFlexible(horizon, req.Events.Movable, req.Events.New)
	if err != nil {
		return nil, fmt.Errorf("invalid flexible events: %w", err)
	}

	builder := &CandidateBuilder{
		Horizon:       horizon,
		AllowedDays:   allowedDays,
		BufferSlots:   bufferSlots,
		NowSlot:       nowSlot,
		Preferred:     preferred,
		FixedBlocking: blocking,
		Truncation:    cfg.CandidateTruncation,
	}
	costModel := CostModel{
		Move:            WeightSet{UnI: req.Weights.Move.UnI, InU: req.Weights.Move.InU},
		DistancePerSlot: WeightSet{UnI: req.Weights.DistancePerSlot.UnI, InU: req.Weights.DistancePerSlot.InU},
		OffPreference:   WeightSet{UnI: req.Weights.OffPreferencePerSlot.UnI, InU: req.Weights.OffPreferencePerSlot.InU},
		CrossDay:        WeightSet{UnI: req.Weights.CrossDayPerEvent.UnI, InU: req.Weights.CrossDayPerEvent.InU},
	}

	candidates := make(map[string][]int, len(flex))
	costs := make(map[CandidateKey]Cost)
	var immediateUnplaced []models.UnplacedEvent
	var feasible []FlexibleEvent

	for _, ev := range flex {
		starts := builder.Build(ev)
		if len(starts) == 0 {
			immediateUnplaced = append(immediateUnplaced, models.UnplacedEvent{ID: ev.ID, Reason: "NoFeasibleCandidates"})
			continue
		}
		candidates[ev.ID] = starts
		for _, s := range starts {
			costs[CandidateKey{ev.ID, s}] = costModel.Evaluate(horizon, ev, s, nowSlot, preferred)
		}
		feasible = append(feasible, ev)
	}

	result, err := runCPSolver(feasible, candidates, costs, blocking, bufferSlots, cfg)
	if err != nil {
		return nil, err
	}

	response := Project(horizon, feasible, immediateUnplaced, result, costs)
	return &response, nil
}

func resolveActiveDays(policy models.PolicyInput) map[int]bool {
	days := make(map[int]bool)
	for _, d := range policy.ActiveDays {
		if d >= 0 && d <= 6 {
			days[d] = true
		}
	}
	if len(days) > 0 {
		return days
	}
	if policy.AllowWeekend != nil && !*policy.AllowWeekend {
		return map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}
	}
	return map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
}

func parseHHMM(value string, def [2]int) [2]int {
	if value == "" {
		return def
	}
	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return def
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return def
	}
	return [2]int{h, m}
}
