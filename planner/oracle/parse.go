package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/capacity-planner/capacity-planner/planner"
)

// ErrMalformed marks an oracle reply that does not contain the expected
// single-object decision shape. Response-shape validation lives here at the
// interface boundary, not in selection logic.
var ErrMalformed = errors.New("oracle response malformed")

// ExtractDecision pulls the single decision object out of raw model text.
// Markdown code fences are stripped first; the object is taken as the span
// from the first '{' to the last '}'. A reply with no object, undecodable
// JSON, or missing machine/operator ids is ErrMalformed.
func ExtractDecision(raw string) (*planner.Recommendation, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrMalformed)
	}

	var rec planner.Recommendation
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if rec.MachineID == "" || rec.OperatorID == "" {
		return nil, fmt.Errorf("%w: decision missing machine_id or operator_id", ErrMalformed)
	}
	return &rec, nil
}
