// Package gonumopt adapts gonum/optimize to the relax.ConstrainedOptimizer
// interface. Box constraints are removed by a smooth change of variables, so
// every local method in gonum/optimize can be used unchanged.
package gonumopt

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"

	"github.com/inference-sim/qubo/qubo"
	"github.com/inference-sim/qubo/qubo/relax"
)

// Method names a gonum/optimize local method.
type Method string

const (
	MethodBFGS            Method = "bfgs"
	MethodLBFGS           Method = "lbfgs"
	MethodNelderMead      Method = "nelder-mead"
	MethodGradientDescent Method = "gradient-descent"
)

// validMethods is the set of recognized method names.
var validMethods = map[Method]bool{
	MethodBFGS:            true,
	MethodLBFGS:           true,
	MethodNelderMead:      true,
	MethodGradientDescent: true,
}

// IsValidMethod returns true if name is a recognized method.
func IsValidMethod(name string) bool {
	return validMethods[Method(name)]
}

// DefaultMethod is used when Optimizer.Method is empty.
const DefaultMethod = MethodBFGS

// Optimizer implements relax.ConstrainedOptimizer.
type Optimizer struct {
	Method        Method
	MaxIterations int // major iterations; 0 means no limit
}

// New returns an Optimizer for the given method.
func New(method Method) (*Optimizer, error) {
	if method == "" {
		method = DefaultMethod
	}
	if !validMethods[method] {
		return nil, fmt.Errorf("gonumopt: unknown method %q: %w", method, qubo.ErrConfiguration)
	}
	return &Optimizer{Method: method}, nil
}

// Minimize runs the configured method without constraints.
func (o *Optimizer) Minimize(cost relax.CostFunction, initial []float64) (*relax.OptimizeResult, error) {
	if cost.Func == nil {
		return nil, fmt.Errorf("gonumopt: cost function is nil: %w", qubo.ErrConfiguration)
	}
	problem := optimize.Problem{
		Func: cost.Func,
		Grad: gradientOf(cost),
	}
	x, err := o.run(problem, initial)
	if err != nil {
		return nil, err
	}
	return &relax.OptimizeResult{Value: cost.Func(x), Params: x}, nil
}

// MinimizeConstrained optimizes over the box through the change of variables
//
//	x_i = l_i + (u_i - l_i)·(sin(y_i) + 1)/2
//
// which maps every real y onto [l_i, u_i] smoothly, so optima on the box
// boundary become ordinary stationary points in y. The returned parameters
// are in x space, with the cost evaluated there.
func (o *Optimizer) MinimizeConstrained(cost relax.CostFunction, initial []float64, c relax.LinearConstraint) (*relax.OptimizeResult, error) {
	if cost.Func == nil {
		return nil, fmt.Errorf("gonumopt: cost function is nil: %w", qubo.ErrConfiguration)
	}
	lower, upper, err := c.Bounds()
	if err != nil {
		return nil, fmt.Errorf("gonumopt: %w", err)
	}
	n := len(initial)
	if len(lower) != n {
		return nil, fmt.Errorf("gonumopt: %d bounds for %d parameters: %w", len(lower), n, qubo.ErrValidation)
	}
	b := box{lower: lower, upper: upper}
	grad := gradientOf(cost)

	problem := optimize.Problem{
		Func: func(y []float64) float64 {
			return cost.Func(b.toX(y))
		},
		Grad: func(g, y []float64) {
			grad(g, b.toX(y))
			for i := range g {
				g[i] *= b.dxdy(i, y[i])
			}
		},
	}

	y, err := o.run(problem, b.toY(initial))
	if err != nil {
		return nil, err
	}
	x := projectToBounds(b.toX(y), lower, upper)
	return &relax.OptimizeResult{Value: cost.Func(x), Params: x}, nil
}

func (o *Optimizer) run(problem optimize.Problem, initial []float64) ([]float64, error) {
	method, err := o.method()
	if err != nil {
		return nil, err
	}
	settings := &optimize.Settings{MajorIterations: o.MaxIterations}

	result, err := optimize.Minimize(problem, initial, settings, method)
	if err != nil && o.Method != MethodNelderMead {
		logrus.Warnf("gonumopt: %s failed (%v), retrying with Nelder-Mead", o.Method, err)
		result, err = optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	}
	if err != nil {
		return nil, fmt.Errorf("gonumopt: optimization failed: %w", err)
	}
	logrus.Debugf("gonumopt: status=%v f=%g evaluations=%d", result.Status, result.F, result.FuncEvaluations)
	return result.X, nil
}

func (o *Optimizer) method() (optimize.Method, error) {
	switch o.Method {
	case MethodBFGS, "":
		return &optimize.BFGS{}, nil
	case MethodLBFGS:
		return &optimize.LBFGS{}, nil
	case MethodNelderMead:
		return &optimize.NelderMead{}, nil
	case MethodGradientDescent:
		return &optimize.GradientDescent{}, nil
	}
	return nil, fmt.Errorf("gonumopt: unknown method %q: %w", o.Method, qubo.ErrConfiguration)
}

// gradientOf returns cost.Grad, or a central finite-difference approximation
// when the cost does not provide one.
func gradientOf(cost relax.CostFunction) func(grad, x []float64) {
	if cost.Grad != nil {
		return cost.Grad
	}
	return func(grad, x []float64) {
		fd.Gradient(grad, cost.Func, x, &fd.Settings{Formula: fd.Central})
	}
}

// box is the sine change of variables between y in R^n and x in [lower, upper].
type box struct {
	lower, upper []float64
}

// interior keeps start points off the boundary, where dx/dy vanishes.
const interior = 1e-9

func (b box) toX(y []float64) []float64 {
	x := make([]float64, len(y))
	for i := range y {
		x[i] = b.lower[i] + (b.upper[i]-b.lower[i])*(math.Sin(y[i])+1)/2
	}
	return x
}

func (b box) toY(x []float64) []float64 {
	y := make([]float64, len(x))
	for i := range x {
		width := b.upper[i] - b.lower[i]
		if width == 0 {
			continue
		}
		s := 2*(x[i]-b.lower[i])/width - 1
		y[i] = math.Asin(math.Max(-1+interior, math.Min(1-interior, s)))
	}
	return y
}

func (b box) dxdy(i int, y float64) float64 {
	return (b.upper[i] - b.lower[i]) * math.Cos(y) / 2
}

// projectToBounds clips x into [lower, upper] component-wise.
func projectToBounds(x, lower, upper []float64) []float64 {
	proj := make([]float64, len(x))
	for i := range x {
		proj[i] = math.Max(lower[i], math.Min(upper[i], x[i]))
	}
	return proj
}
