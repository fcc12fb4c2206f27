package planner

import "github.com/sirupsen/logrus"

// PairOperators cross-joins feasible machines with operators whose preferred
// machine type exactly matches, adjusting completion time by operator
// efficiency. Pairs missing the deadline are dropped, so no emitted pair
// violates it. The machine's risk is carried forward unchanged. Output is
// bounded by machines × matching operators; order is not significant.
func PairOperators(catalog *Catalog, machines []FeasibleMachine, deadlineHrs int) []MachineOperatorPair {
	var pairs []MachineOperatorPair

	for _, machine := range machines {
		for _, op := range catalog.OperatorsFor(machine.MachineType) {
			adjustedHrs := machine.EffectiveTimeHrs / op.EfficiencyScore

			if adjustedHrs > float64(deadlineHrs) {
				logrus.Debugf("pair %s/%s: adjusted time %.2fh misses deadline %dh",
					machine.MachineID, op.OperatorID, adjustedHrs, deadlineHrs)
				continue
			}

			pairs = append(pairs, MachineOperatorPair{
				MachineID:          machine.MachineID,
				MachineType:        machine.MachineType,
				OperatorID:         op.OperatorID,
				OperatorName:       op.OperatorName,
				FinalTimeHrs:       round2(adjustedHrs),
				OperatorEfficiency: op.EfficiencyScore,
				Risk:               machine.Risk,
			})
		}
	}
	return pairs
}
