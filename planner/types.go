package planner

import (
	"errors"
	"fmt"
)

// CriticalityLevel classifies how critical a machine is to the production line.
type CriticalityLevel string

const (
	CriticalityLow    CriticalityLevel = "Low"
	CriticalityMedium CriticalityLevel = "Medium"
	CriticalityHigh   CriticalityLevel = "High"
)

// PartCatalogEntry describes a part producible on a specific machine.
// One entry exists per (part_id, machine_id).
type PartCatalogEntry struct {
	PartID           string
	MachineID        string
	CycleTimeSeconds float64 // seconds per piece (>= 0)
	SetupTimeMinutes float64
}

// MachinePlan is the operating plan for a machine.
// UptimePercentage is a throughput derating factor in (0, 1]; entries at or
// below zero are unusable and excluded by the feasibility filter.
type MachinePlan struct {
	MachineID        string
	MachineType      string
	UptimePercentage float64
}

// MachineAvailability captures current operability of a machine.
type MachineAvailability struct {
	MachineID        string
	IsAvailable      bool
	CriticalityLevel CriticalityLevel
	RiskOfFailure    float64 // in [0, 1]
}

// OperatorProfile describes an operator's capability.
// EfficiencyScore must be > 0: it divides effective time during pairing.
type OperatorProfile struct {
	OperatorID           string
	OperatorName         string
	PreferredMachineType string
	EfficiencyScore      float64
}

// FeasibleMachine is a machine cleared to produce the part within constraints.
// EffectiveTimeHrs is production time inflated by the inverse of uptime and
// never exceeds the requested deadline at the time of creation.
type FeasibleMachine struct {
	MachineID        string
	MachineType      string
	EffectiveTimeHrs float64
	Risk             float64
}

// MachineOperatorPair is a candidate assignment. JSON tags match the wire
// shape handed to the scoring oracle and returned to API callers.
type MachineOperatorPair struct {
	MachineID          string  `json:"machine_id"`
	MachineType        string  `json:"machine_type"`
	OperatorID         string  `json:"operator_id"`
	OperatorName       string  `json:"operator_name"`
	FinalTimeHrs       float64 `json:"final_time"`
	OperatorEfficiency float64 `json:"operator_efficiency"`
	Risk               float64 `json:"risk"`
	LearningPenalty    float64 `json:"learning_penalty"`
	LearningReward     float64 `json:"learning_reward"`
}

// Recommendation is the single chosen candidate plus the oracle's rationale.
type Recommendation struct {
	MachineID          string  `json:"machine_id"`
	OperatorID         string  `json:"operator_id"`
	OperatorName       string  `json:"operator_name"`
	FinalTime          float64 `json:"final_time"`
	OperatorEfficiency float64 `json:"operator_efficiency"`
	Risk               float64 `json:"risk"`
	Reasoning          string  `json:"reasoning"`
}

// PlanRequest is the pipeline entry contract.
type PlanRequest struct {
	TargetQty   int    `json:"target_qty"`
	DeadlineHrs int    `json:"deadline_hrs"`
	PartID      string `json:"part_id"`
}

// ErrInvalidRequest marks client-input errors detected before the pipeline
// starts, distinct from a "no feasible plan" outcome.
var ErrInvalidRequest = errors.New("invalid plan request")

// Validate rejects non-positive quantity/deadline and empty part ids.
func (r PlanRequest) Validate() error {
	if r.TargetQty <= 0 {
		return fmt.Errorf("%w: target_qty must be positive, got %d", ErrInvalidRequest, r.TargetQty)
	}
	if r.DeadlineHrs <= 0 {
		return fmt.Errorf("%w: deadline_hrs must be positive, got %d", ErrInvalidRequest, r.DeadlineHrs)
	}
	if r.PartID == "" {
		return fmt.Errorf("%w: part_id must be non-empty", ErrInvalidRequest)
	}
	return nil
}

// PlanResult is the pipeline response. Recommendation is nil when no feasible
// candidate exists or the oracle declined; Explanation always says why.
type PlanResult struct {
	Recommendation *Recommendation `json:"recommendation"`
	Explanation    string          `json:"explanation"`
}
