package planner

import (
	"math/rand"
	"sync"
)

// OutcomeSource reports whether a recommended assignment succeeded. The
// default WeightedCoin is a stand-in for a real outcome-tracking
// integration; its weights carry no business meaning.
type OutcomeSource interface {
	Succeeded(rec Recommendation) bool
}

// WeightedCoin synthesizes outcomes as a weighted coin flip. Seeded so runs
// are reproducible. The mutex makes it safe under concurrent pipeline runs;
// rand.Rand itself is not.
type WeightedCoin struct {
	successRate float64
	mu          sync.Mutex
	rng         *rand.Rand
}

// DefaultSuccessRate is the placeholder success probability.
const DefaultSuccessRate = 0.8

// NewWeightedCoin creates a WeightedCoin with the given success probability.
func NewWeightedCoin(successRate float64, seed int64) *WeightedCoin {
	return &WeightedCoin{
		successRate: successRate,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Succeeded implements OutcomeSource.
func (w *WeightedCoin) Succeeded(_ Recommendation) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rng.Float64() < w.successRate
}
