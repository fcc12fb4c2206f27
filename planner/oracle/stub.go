package oracle

import (
	"context"
	"errors"

	"github.com/capacity-planner/capacity-planner/planner"
)

// LowestTime is a deterministic oracle that picks the candidate with the
// lowest final time, ties broken by first occurrence. It keeps the pipeline
// testable and runnable without network access.
type LowestTime struct{}

// Decide implements planner.Oracle.
func (LowestTime) Decide(_ context.Context, candidates []planner.MachineOperatorPair, _ planner.PlanRequest) (*planner.Recommendation, error) {
	if len(candidates) == 0 {
		return nil, errors.New("no candidates to decide between")
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.FinalTimeHrs < best.FinalTimeHrs {
			best = c
		}
	}

	return &planner.Recommendation{
		MachineID:          best.MachineID,
		OperatorID:         best.OperatorID,
		OperatorName:       best.OperatorName,
		FinalTime:          best.FinalTimeHrs,
		OperatorEfficiency: best.OperatorEfficiency,
		Risk:               best.Risk,
		Reasoning:          "lowest projected completion time among feasible candidates",
	}, nil
}
