package planner

import (
	"math"

	"github.com/sirupsen/logrus"
)

// highCriticalityRiskCutoff is the hard safety cutoff: High-criticality
// machines above this failure risk are never offered regardless of time fit.
const highCriticalityRiskCutoff = 0.15

// round2 rounds to 2 decimal places for downstream comparison.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FilterFeasible evaluates each catalog entry for the part against its plan,
// availability and risk data and keeps machines able to finish within the
// deadline. Missing reference data excludes the machine, it never fails the
// run. Output order is not significant.
//
// The set shrinks monotonically as targetQty grows or deadlineHrs shrinks:
// production time is non-decreasing in quantity, so raising quantity or
// tightening the deadline can only remove machines, never add them.
func FilterFeasible(catalog *Catalog, entries []PartCatalogEntry, targetQty, deadlineHrs int) []FeasibleMachine {
	feasible := make([]FeasibleMachine, 0, len(entries))

	for _, entry := range entries {
		plan, ok := catalog.Plan(entry.MachineID)
		if !ok {
			logrus.Debugf("machine %s: no operating plan, skipping", entry.MachineID)
			continue
		}
		avail, ok := catalog.Availability(entry.MachineID)
		if !ok {
			logrus.Debugf("machine %s: no availability row, skipping", entry.MachineID)
			continue
		}

		if !avail.IsAvailable {
			logrus.Debugf("machine %s: not available", entry.MachineID)
			continue
		}
		if plan.UptimePercentage <= 0 {
			logrus.Debugf("machine %s: uptime %v unusable", entry.MachineID, plan.UptimePercentage)
			continue
		}
		if avail.CriticalityLevel == CriticalityHigh && avail.RiskOfFailure > highCriticalityRiskCutoff {
			logrus.Debugf("machine %s: high criticality with risk %v over cutoff", entry.MachineID, avail.RiskOfFailure)
			continue
		}

		productionHrs := (entry.CycleTimeSeconds*float64(targetQty))/3600 + entry.SetupTimeMinutes/60

		// Uptime derates throughput: lower uptime inflates wall-clock time.
		effectiveHrs := productionHrs / plan.UptimePercentage

		if effectiveHrs > float64(deadlineHrs) {
			logrus.Debugf("machine %s: effective time %.2fh misses deadline %dh", entry.MachineID, effectiveHrs, deadlineHrs)
			continue
		}

		feasible = append(feasible, FeasibleMachine{
			MachineID:        entry.MachineID,
			MachineType:      plan.MachineType,
			EffectiveTimeHrs: round2(effectiveHrs),
			Risk:             avail.RiskOfFailure,
		})
	}
	return feasible
}
