package engine

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	satpb "github.com/google/or-tools/ortools/sat/proto/sat"
	"google.golang.org/protobuf/proto"

	"github.com/jadeyalli/agendaInteligente/internal/config"
)

// Assignment is one flexible event's chosen start slot, or OK=false if the
// solver could not place it.
type Assignment struct {
	EventID string
	Start   int
	OK      bool
}

// SolveResult is the raw output of one CP-SAT solve.
type SolveResult struct {
	Status         cmpb.CpSolverStatus
	Assignments    []Assignment
	ObjectiveValue float64
}

type varKey struct {
	eventID string
	start   int
}

// runCPSolver builds and solves the no-double-book assignment problem:
// exactly one candidate start per flexible event, optional intervals for
// every candidate that cannot overlap, mandatory intervals for every
// capacity-blocking fixed event, one global no-overlap constraint across
// all of them, minimizing total additive cost.
func runCPSolver(flex []FlexibleEvent, candidates map[string][]int, costs map[CandidateKey]Cost, fixedBlocking []FixedEvent, bufferSlots int, cfg config.SolverConfig) (*SolveResult, error) {
	model := cpmodel.NewCpModelBuilder()

	vars := make(map[varKey]cpmodel.BoolVar)
	var blockingIntervals []cpmodel.IntervalVar
	obj := cpmodel.NewLinearExpr()

	for _, ev := range flex {
		starts := candidates[ev.ID]
		if len(starts) == 0 {
			continue
		}
		options := make([]cpmodel.BoolVar, 0, len(starts))
		for _, s := range starts {
			v := model.NewBoolVar()
			vars[varKey{ev.ID, s}] = v
			options = append(options, v)

			if cost := costs[CandidateKey{ev.ID, s}].Total; cost != 0 {
				obj.AddTerm(v, int64(cost))
			}

			if !ev.Overlap {
				duration := ev.DurationSlots + bufferSlots
				start := cpmodel.NewConstant(int64(s))
				end := cpmodel.NewConstant(int64(s + duration))
				blockingIntervals = append(blockingIntervals,
					model.NewOptionalIntervalVar(start, cpmodel.NewConstant(int64(duration)), end, v))
			}
		}
		model.AddExactlyOne(options...)
	}

	for _, f := range fixedBlocking {
		start := cpmodel.NewConstant(int64(f.StartSlot))
		duration := cpmodel.NewConstant(int64(f.EndSlot - f.StartSlot))
		end := cpmodel.NewConstant(int64(f.EndSlot))
		blockingIntervals = append(blockingIntervals, model.NewIntervalVar(start, duration, end))
	}

	if len(blockingIntervals) > 0 {
		model.AddNoOverlap(blockingIntervals...)
	}

	model.Minimize(obj)

	built, err := model.Model()
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate CP model: %w", err)
	}

	params := &satpb.SatParameters{
		MaxTimeInSeconds: proto.Float64(cfg.MaxSeconds),
		NumSearchWorkers: proto.Int32(int32(cfg.Workers)),
	}

	response, err := cpmodel.SolveCpModelWithParameters(built, params)
	if err != nil {
		return nil, fmt.Errorf("failed to solve CP model: %w", err)
	}

	log.V(1).Infof("solve status=%s objective=%v candidates=%d", response.GetStatus(), response.GetObjectiveValue(), len(vars))

	result := &SolveResult{Status: response.GetStatus()}
	if response.GetStatus() != cmpb.CpSolverStatus_OPTIMAL && response.GetStatus() != cmpb.CpSolverStatus_FEASIBLE {
		return result, nil
	}

	result.ObjectiveValue = response.GetObjectiveValue()
	for _, ev := range flex {
		assigned := Assignment{EventID: ev.ID}
		for _, s := range candidates[ev.ID] {
			v, ok := vars[varKey{ev.ID, s}]
			if !ok {
				continue
			}
			if cpmodel.SolutionBooleanValue(response, v) {
				assigned.Start = s
				assigned.OK = true
				break
			}
		}
		result.Assignments = append(result.Assignments, assigned)
	}

	return result, nil
}
