// Package convex provides the default relax.ConvexBackend: a projected
// coordinate-descent solver for box-constrained convex quadratic programs
//
//	minimize ½ xᵀPx + qᵀx  subject to  l ≤ x ≤ u
//
// Each sweep minimizes the objective exactly along one coordinate and clips
// the result to its bounds. For positive semidefinite P the iteration
// decreases the objective monotonically and converges to the global minimum.
package convex

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/relax"
)

const (
	// DefaultTolerance stops the sweeps once no coordinate moves more than this.
	DefaultTolerance = 1e-12
	// DefaultMaxSweeps caps the number of full passes over the coordinates.
	DefaultMaxSweeps = 10000
)

// Backend is a box-constrained convex QP solver.
type Backend struct {
	Tolerance float64
	MaxSweeps int
}

// New returns a Backend with default tolerance and sweep limit.
func New() *Backend {
	return &Backend{Tolerance: DefaultTolerance, MaxSweeps: DefaultMaxSweeps}
}

// Solve implements relax.ConvexBackend. Only identity-matrix (box)
// constraints are supported.
func (b *Backend) Solve(obj relax.QuadraticObjective, c relax.LinearConstraint) ([]float64, float64, error) {
	if obj.P == nil {
		return nil, 0, fmt.Errorf("convex: nil objective matrix: %w", qubo.ErrValidation)
	}
	n := obj.P.SymmetricDim()
	lower, upper, err := c.Bounds()
	if err != nil {
		return nil, 0, fmt.Errorf("convex: %w", err)
	}
	if len(lower) != n {
		return nil, 0, fmt.Errorf("convex: %d bounds for %d variables: %w", len(lower), n, qubo.ErrValidation)
	}
	if obj.Q != nil && len(obj.Q) != n {
		return nil, 0, fmt.Errorf("convex: linear term has %d entries for %d variables: %w", len(obj.Q), n, qubo.ErrValidation)
	}
	q := obj.Q
	if q == nil {
		q = make([]float64, n)
	}

	// Start from the projection of the origin onto the box.
	x := make([]float64, n)
	for i := range x {
		x[i] = clamp(0, lower[i], upper[i])
	}

	sweep := 0
	for ; sweep < b.MaxSweeps; sweep++ {
		maxStep := 0.0
		for i := 0; i < n; i++ {
			pii := obj.P.At(i, i)
			grad := q[i]
			for j := 0; j < n; j++ {
				if j != i {
					grad += obj.P.At(i, j) * x[j]
				}
			}
			var next float64
			switch {
			case pii > 0:
				next = clamp(-grad/pii, lower[i], upper[i])
			case grad > 0:
				next = lower[i]
			case grad < 0:
				next = upper[i]
			default:
				next = x[i]
			}
			maxStep = math.Max(maxStep, math.Abs(next-x[i]))
			x[i] = next
		}
		if maxStep <= b.Tolerance {
			break
		}
	}
	if sweep == b.MaxSweeps {
		logrus.Warnf("convex: stopped after %d sweeps without reaching tolerance %g", b.MaxSweeps, b.Tolerance)
	}
	return x, obj.Value(x), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
