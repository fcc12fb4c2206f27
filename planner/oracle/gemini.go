package oracle

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/capacity-planner/capacity-planner/planner"
)

const (
	defaultGeminiModel   = "gemini-2.0-flash"
	defaultOracleTimeout = 30 * time.Second

	// Low temperature: the oracle should rank, not improvise.
	geminiTemperature float32 = 0.2
)

// Gemini scores candidates with Google's Gemini API. Every call carries a
// bounded timeout; expiry surfaces as an oracle error, which the gateway
// turns into a no-recommendation result.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini oracle.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini oracle requires an API key")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = defaultOracleTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Decide implements planner.Oracle.
func (g *Gemini) Decide(ctx context.Context, candidates []planner.MachineOperatorPair, req planner.PlanRequest) (*planner.Recommendation, error) {
	prompt, err := buildPrompt(candidates, req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(geminiTemperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini call failed: %w", err)
	}

	return ExtractDecision(resp.Text())
}
