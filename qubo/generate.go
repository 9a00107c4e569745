package qubo

import (
	"fmt"
	"math/rand"
)

// GenerateUniform returns a fully connected model over variables 0..size-1
// whose linear and quadratic biases are drawn uniformly from [low, high).
// Linear biases are drawn first in variable order, then pairs in (U, V) order,
// so a given rng state always yields the same model. The offset is zero.
func GenerateUniform(size int, low, high float64, vt Vartype, rng *rand.Rand) (*Model, error) {
	if size < 0 {
		return nil, fmt.Errorf("size must be non-negative, got %d: %w", size, ErrValidation)
	}
	if !(low <= high) || !isFinite(low) || !isFinite(high) {
		return nil, fmt.Errorf("invalid bias range [%v, %v): %w", low, high, ErrValidation)
	}
	if rng == nil {
		return nil, fmt.Errorf("GenerateUniform: nil rng: %w", ErrConfiguration)
	}
	draw := func() float64 { return low + (high-low)*rng.Float64() }

	linear := make(map[int]float64, size)
	for v := 0; v < size; v++ {
		linear[v] = draw()
	}
	quadratic := make(map[Pair]float64, size*(size-1)/2)
	for u := 0; u < size; u++ {
		for v := u + 1; v < size; v++ {
			quadratic[Pair{U: u, V: v}] = draw()
		}
	}
	return NewModel(linear, quadratic, 0, vt)
}
