package planner

import "github.com/capacity-planner/capacity-planner/planner/memory"

// Per-record learning increments. Accumulate additively and unboundedly:
// a pair with many past failures accrues a penalty proportional to the
// failure count.
const (
	failurePenalty = 0.1
	successReward  = 0.05
)

// AnnotateLearning attaches an experience penalty and reward to each pair
// from historical records sharing both machine and operator. Annotation is
// advisory only: it neither filters nor re-ranks here; the scoring oracle
// weighs it downstream. With an empty history every pair stays at zero.
func AnnotateLearning(pairs []MachineOperatorPair, history []memory.HistoricalRecord) {
	for i := range pairs {
		var penalty, reward float64
		for _, past := range history {
			if past.MachineID != pairs[i].MachineID || past.OperatorID != pairs[i].OperatorID {
				continue
			}
			if past.Success {
				reward += successReward
			} else {
				penalty += failurePenalty
			}
		}
		pairs[i].LearningPenalty = round2(penalty)
		pairs[i].LearningReward = round2(reward)
	}
}
