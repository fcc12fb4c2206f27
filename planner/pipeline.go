package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/capacity-planner/capacity-planner/planner/memory"
)

// Oracle is the external scoring capability the Decision Gateway delegates
// final ranking to. Implementations receive the full annotated candidate
// list and the request context and return exactly one decision, or an error
// when they cannot decide (malformed response, timeout, refusal). The
// gateway collapses every oracle error to a structured no-recommendation
// result; it never crashes the run.
type Oracle interface {
	Decide(ctx context.Context, candidates []MachineOperatorPair, req PlanRequest) (*Recommendation, error)
}

// NoFeasibleExplanation is the no-recommendation text for an empty
// candidate list, distinct from oracle-failure explanations.
const NoFeasibleExplanation = "No feasible machine-operator combination found."

// Planner runs the feasibility-filtering, pairing and outcome-learning
// pipeline. The catalog is shared read-only; the store is the only shared
// mutable resource and serializes its own appends.
type Planner struct {
	catalog *Catalog
	store   *memory.Store
	oracle  Oracle
	outcome OutcomeSource
}

// New wires a Planner from its collaborators.
func New(catalog *Catalog, store *memory.Store, oracle Oracle, outcome OutcomeSource) *Planner {
	return &Planner{
		catalog: catalog,
		store:   store,
		oracle:  oracle,
		outcome: outcome,
	}
}

// Plan runs one request through the pipeline:
//
//	PartResolved → FeasibilityFiltered → Paired → MemoryRead →
//	LearningAnnotated → Decided → MemoryAppended
//
// Empty collections flow forward; only the decision stage short-circuits to
// a no-recommendation result when no pairs remain. Errors are returned only
// for invalid requests and persistence failures, never for lookup misses,
// constraint rejections or oracle failures.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	if err := req.Validate(); err != nil {
		return PlanResult{}, err
	}

	log := logrus.WithFields(logrus.Fields{
		"run_id":  uuid.NewString(),
		"part_id": req.PartID,
	})

	entries := p.catalog.PartEntries(req.PartID)
	log.Debugf("part resolved to %d catalog entries", len(entries))

	machines := FilterFeasible(p.catalog, entries, req.TargetQty, req.DeadlineHrs)
	log.Debugf("%d machines feasible within %dh", len(machines), req.DeadlineHrs)

	pairs := PairOperators(p.catalog, machines, req.DeadlineHrs)
	log.Debugf("%d machine-operator pairs within deadline", len(pairs))

	history, err := p.store.Read()
	if err != nil {
		return PlanResult{}, err
	}
	AnnotateLearning(pairs, history)

	if len(pairs) == 0 {
		log.Info("no feasible machine-operator combination")
		return PlanResult{Explanation: NoFeasibleExplanation}, nil
	}

	rec, err := p.oracle.Decide(ctx, pairs, req)
	if err != nil {
		log.Warnf("oracle declined: %v", err)
		return PlanResult{Explanation: fmt.Sprintf("no recommendation: %v", err)}, nil
	}
	if !containsPair(pairs, rec.MachineID, rec.OperatorID) {
		log.Warnf("oracle selected unknown candidate %s/%s", rec.MachineID, rec.OperatorID)
		return PlanResult{Explanation: fmt.Sprintf(
			"no recommendation: oracle selected machine %s / operator %s, which is not in the offered candidate list",
			rec.MachineID, rec.OperatorID)}, nil
	}

	success := p.outcome.Succeeded(*rec)
	if err := p.store.Append(memory.HistoricalRecord{
		PartID:       req.PartID,
		MachineID:    rec.MachineID,
		OperatorID:   rec.OperatorID,
		OperatorName: rec.OperatorName,
		Success:      success,
		TimeTaken:    rec.FinalTime,
		Risk:         rec.Risk,
	}); err != nil {
		return PlanResult{}, err
	}

	log.Infof("recommending machine %s with operator %s (%.2fh, risk %.2f)",
		rec.MachineID, rec.OperatorID, rec.FinalTime, rec.Risk)
	return PlanResult{Recommendation: rec, Explanation: rec.Reasoning}, nil
}

func containsPair(pairs []MachineOperatorPair, machineID, operatorID string) bool {
	for _, pair := range pairs {
		if pair.MachineID == machineID && pair.OperatorID == operatorID {
			return true
		}
	}
	return false
}
