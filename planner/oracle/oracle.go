// Package oracle provides scoring-oracle bindings for the planner's
// Decision Gateway: a deterministic stub for tests and offline use, and a
// Gemini-backed production binding.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/capacity-planner/capacity-planner/planner"
)

// Config selects and parameterizes an oracle binding.
type Config struct {
	Name    string // "stub" or "gemini"
	APIKey  string
	Model   string
	Timeout time.Duration
}

// New creates an oracle by name. An empty name defaults to the stub so the
// pipeline works without network access.
func New(ctx context.Context, cfg Config) (planner.Oracle, error) {
	switch cfg.Name {
	case "", "stub":
		return LowestTime{}, nil
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown oracle %q", cfg.Name)
	}
}

// buildPrompt renders the selection prompt: production requirements, the
// candidate list as JSON, and single-object output instructions.
func buildPrompt(candidates []planner.MachineOperatorPair, req planner.PlanRequest) (string, error) {
	payload, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding candidates: %w", err)
	}

	return fmt.Sprintf(`You are an AI Capacity Planning Optimization Engine.

Production Requirements:
- Quantity: %d
- Deadline: %d hours
- Part ID: %s

Available Machine-Operator Options:
%s

Select ONLY the single BEST combination, weighing final time, risk, and the
learning penalty/reward from past outcomes.

Return ONLY ONE JSON object.
Do NOT return a list.
Do NOT rank.
Do NOT add markdown.
Do NOT add explanation outside JSON.

JSON format:
{
  "machine_id": "...",
  "operator_id": "...",
  "operator_name": "...",
  "final_time": number,
  "operator_efficiency": number,
  "risk": number,
  "reasoning": "clear explanation"
}`, req.TargetQty, req.DeadlineHrs, req.PartID, payload), nil
}
