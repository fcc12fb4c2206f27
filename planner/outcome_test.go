package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedCoin_Extremes(t *testing.T) {
	always := NewWeightedCoin(1.0, 42)
	never := NewWeightedCoin(0.0, 42)

	for i := 0; i < 100; i++ {
		assert.True(t, always.Succeeded(Recommendation{}))
		assert.False(t, never.Succeeded(Recommendation{}))
	}
}

func TestWeightedCoin_SeededReproducibility(t *testing.T) {
	a := NewWeightedCoin(DefaultSuccessRate, 42)
	b := NewWeightedCoin(DefaultSuccessRate, 42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Succeeded(Recommendation{}), b.Succeeded(Recommendation{}))
	}
}
