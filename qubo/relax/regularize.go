package relax

import (
	"fmt"
	"math"

	"github.com/inference-sim/qubo/qubo"
)

// DefaultRegularizationEpsilon is the clamp band used by Regularize.
const DefaultRegularizationEpsilon = 0.5

// Regularize maps relaxed values in [0, 1] to rotation angles 2·asin(√v).
// Values within epsilon of either bound are clamped to the band edge first,
// which keeps the derivative of the map finite:
//
//	v ≤ ε         → 2·asin(√ε)
//	ε < v < 1-ε   → 2·asin(√v)
//	v ≥ 1-ε       → 2·asin(√(1-ε))
//
// epsilon must lie in [0, 0.5]. See arXiv:2009.10095v3, section 2B.
func Regularize(relaxed []float64, epsilon float64) ([]float64, error) {
	if math.IsNaN(epsilon) || epsilon < 0 || epsilon > 0.5 {
		return nil, fmt.Errorf("regularization epsilon must be in [0, 0.5], got %v: %w", epsilon, qubo.ErrValidation)
	}
	for i, v := range relaxed {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("relaxed value %d = %v is outside [0, 1]: %w", i, v, qubo.ErrValidation)
		}
	}

	angles := make([]float64, len(relaxed))
	for i, v := range relaxed {
		switch {
		case v > epsilon && v < 1-epsilon:
			angles[i] = 2 * math.Asin(math.Sqrt(v))
		case v <= epsilon:
			angles[i] = 2 * math.Asin(math.Sqrt(epsilon))
		default:
			angles[i] = 2 * math.Asin(math.Sqrt(1-epsilon))
		}
	}
	return angles, nil
}
