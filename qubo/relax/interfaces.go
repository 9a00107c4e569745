package relax

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/inference-sim/qubo/qubo"
)

// CostFunction is an objective for an Optimizer. Grad is optional; when nil
// an optimizer may approximate the gradient numerically.
type CostFunction struct {
	Func func(x []float64) float64
	Grad func(grad, x []float64)
}

// OptimizeResult is the outcome of one Optimizer run.
type OptimizeResult struct {
	Value  float64   // objective value at Params
	Params []float64 // minimizer found
}

// Optimizer minimizes an unconstrained cost from a starting point.
type Optimizer interface {
	Minimize(cost CostFunction, initial []float64) (*OptimizeResult, error)
}

// ConstrainedOptimizer is an Optimizer that also honours linear constraints.
// The non-convex relaxation path requires this capability.
type ConstrainedOptimizer interface {
	Optimizer
	MinimizeConstrained(cost CostFunction, initial []float64, c LinearConstraint) (*OptimizeResult, error)
}

// LinearConstraint is Lower ≤ A x ≤ Upper, row-wise.
type LinearConstraint struct {
	A     *mat.Dense
	Lower []float64
	Upper []float64
}

// BoxConstraint returns lo ≤ x_i ≤ hi for n variables, with A the identity.
func BoxConstraint(n int, lo, hi float64) LinearConstraint {
	a := mat.NewDense(n, n, nil)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
		lower[i] = lo
		upper[i] = hi
	}
	return LinearConstraint{A: a, Lower: lower, Upper: upper}
}

// Bounds returns per-variable bounds when A is the identity. Solvers that only
// understand boxes use it and report ErrConfiguration for anything else.
func (c LinearConstraint) Bounds() (lower, upper []float64, err error) {
	if c.A == nil {
		return nil, nil, fmt.Errorf("constraint matrix is nil: %w", qubo.ErrValidation)
	}
	r, cols := c.A.Dims()
	if r != len(c.Lower) || r != len(c.Upper) {
		return nil, nil, fmt.Errorf("constraint has %d rows but %d lower and %d upper bounds: %w",
			r, len(c.Lower), len(c.Upper), qubo.ErrValidation)
	}
	if r != cols {
		return nil, nil, fmt.Errorf("only box constraints are supported, got %dx%d matrix: %w", r, cols, qubo.ErrConfiguration)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if c.A.At(i, j) != want {
				return nil, nil, fmt.Errorf("only box constraints are supported, A[%d][%d]=%v: %w", i, j, c.A.At(i, j), qubo.ErrConfiguration)
			}
		}
		if c.Lower[i] > c.Upper[i] {
			return nil, nil, fmt.Errorf("empty box on variable %d: [%v, %v]: %w", i, c.Lower[i], c.Upper[i], qubo.ErrValidation)
		}
	}
	return c.Lower, c.Upper, nil
}

// QuadraticObjective is ½ xᵀPx + qᵀx. A nil Q means no linear term.
type QuadraticObjective struct {
	P mat.Symmetric
	Q []float64
}

// Value evaluates the objective at x.
func (o QuadraticObjective) Value(x []float64) float64 {
	v := mat.NewVecDense(len(x), x)
	value := 0.5 * mat.Inner(v, o.P, v)
	if o.Q != nil {
		value += floats.Dot(o.Q, x)
	}
	return value
}

// ConvexBackend solves box-constrained convex quadratic programs. P must be
// positive semidefinite.
type ConvexBackend interface {
	Solve(obj QuadraticObjective, c LinearConstraint) (x []float64, value float64, err error)
}

// NewConvexBackendFunc builds the default ConvexBackend used when
// Options.Backend is nil. Set by qubo/relax/convex's init(); nil until that
// package is imported.
var NewConvexBackendFunc func() ConvexBackend
