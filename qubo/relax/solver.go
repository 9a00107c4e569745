package relax

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/inference-sim/qubo/qubo"
)

// Path identifies which strategy produced a Result.
type Path string

const (
	// PathEmpty is reported for models without variables; nothing was solved.
	PathEmpty Path = "empty"
	// PathConvex is the direct convex solve of ½ xᵀPx over the unit box.
	PathConvex Path = "convex"
	// PathOptimizer is the multi-trial generic optimizer over the unit box.
	PathOptimizer Path = "optimizer"
)

// Options configures a relaxation solve.
type Options struct {
	Trials     int           // random restarts on the optimizer path (must be ≥ 1)
	Symmetrize bool          // replace P with (P + Pᵀ)/2 before solving
	PSDEpsilon float64       // eigenvalue floor for the definiteness check
	Backend    ConvexBackend // convex path; nil uses NewConvexBackendFunc
	Optimizer  Optimizer     // optimizer path; must implement ConstrainedOptimizer
	RNG        *rand.Rand    // source of trial start points
}

// DefaultOptions returns one trial, symmetrization on and DefaultPSDEpsilon.
// Collaborators and RNG are left nil.
func DefaultOptions() Options {
	return Options{
		Trials:     1,
		Symmetrize: true,
		PSDEpsilon: DefaultPSDEpsilon,
	}
}

// Result is a relaxed solution and its objective value.
type Result struct {
	Variables   []int     // model variable for each Solution entry (nil for matrix inputs)
	Solution    []float64 // entries in [0, 1]
	Value       float64   // ½ xᵀPx on PathConvex, xᵀPx on PathOptimizer
	Path        Path
	TrialValues []float64 // objective of every trial, in trial order (PathOptimizer only)
}

// SolveRelaxation relaxes a binary model to the unit box and minimizes its
// coefficient-matrix quadratic form. Positive semidefinite matrices go to the
// convex backend; all others to the multi-trial optimizer.
func SolveRelaxation(m *qubo.Model, opts Options) (*Result, error) {
	if m == nil {
		return nil, fmt.Errorf("SolveRelaxation: nil model: %w", qubo.ErrValidation)
	}
	if m.Vartype() != qubo.Binary {
		return nil, fmt.Errorf("SolveRelaxation: expected %s model, got %s: %w", qubo.Binary, m.Vartype(), qubo.ErrValidation)
	}
	if m.NumVariables() == 0 {
		res := emptyResult()
		res.Variables = []int{}
		return res, nil
	}

	p, vars, err := qubo.CoefficientMatrix(m)
	if err != nil {
		return nil, err
	}
	matrix := prepare(p, opts.Symmetrize)
	psd, err := IsPositiveSemidefinite(asSymmetric(matrix), opts.PSDEpsilon)
	if err != nil {
		return nil, err
	}

	var res *Result
	if psd {
		logrus.Infof("relaxation: %d variables, matrix is PSD, solving convex program", len(vars))
		res, err = solveConvex(matrix, opts)
	} else {
		logrus.Infof("relaxation: %d variables, matrix is not PSD, running %d optimizer trial(s)", len(vars), opts.Trials)
		res, err = solveTrials(matrix, opts)
	}
	if err != nil {
		return nil, err
	}
	res.Variables = vars
	return res, nil
}

// SolvePSD minimizes ½ xᵀPx subject to 0 ≤ x ≤ 1 with the convex backend.
// It fails with ErrDomain when the quadratic form of P is not convex, which is
// decided on (P + Pᵀ)/2 whether or not opts.Symmetrize is set.
func SolvePSD(p mat.Matrix, opts Options) (*Result, error) {
	if err := checkSquare(p); err != nil {
		return nil, err
	}
	if isEmpty(p) {
		return emptyResult(), nil
	}
	matrix := prepare(p, opts.Symmetrize)
	psd, err := IsPositiveSemidefinite(asSymmetric(matrix), opts.PSDEpsilon)
	if err != nil {
		return nil, err
	}
	if !psd {
		return nil, fmt.Errorf("SolvePSD: matrix is not positive semidefinite: %w", qubo.ErrDomain)
	}
	return solveConvex(matrix, opts)
}

// SolveWithOptimizer minimizes xᵀPx subject to 0 ≤ x ≤ 1 from opts.Trials
// uniform random starting points and returns the lowest result.
func SolveWithOptimizer(p mat.Matrix, opts Options) (*Result, error) {
	if err := checkSquare(p); err != nil {
		return nil, err
	}
	if isEmpty(p) {
		return emptyResult(), nil
	}
	return solveTrials(prepare(p, opts.Symmetrize), opts)
}

func solveConvex(matrix mat.Matrix, opts Options) (*Result, error) {
	n, _ := matrix.Dims()
	backend := opts.Backend
	if backend == nil {
		if NewConvexBackendFunc == nil {
			return nil, fmt.Errorf("no convex backend configured or registered: %w", qubo.ErrConfiguration)
		}
		backend = NewConvexBackendFunc()
	}

	obj := QuadraticObjective{P: asSymmetric(matrix)}
	x, value, err := backend.Solve(obj, BoxConstraint(n, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(x) != n {
		return nil, fmt.Errorf("convex backend returned %d values for %d variables: %w", len(x), n, qubo.ErrValidation)
	}
	return &Result{Solution: x, Value: value, Path: PathConvex}, nil
}

func solveTrials(matrix mat.Matrix, opts Options) (*Result, error) {
	co, ok := opts.Optimizer.(ConstrainedOptimizer)
	if !ok {
		return nil, fmt.Errorf("optimizer %T does not support constraints: %w", opts.Optimizer, qubo.ErrConfiguration)
	}
	if opts.RNG == nil {
		return nil, fmt.Errorf("optimizer path requires a random source: %w", qubo.ErrConfiguration)
	}
	if opts.Trials < 1 {
		return nil, fmt.Errorf("trials must be at least 1, got %d: %w", opts.Trials, qubo.ErrValidation)
	}

	n, _ := matrix.Dims()
	box := BoxConstraint(n, 0, 1)
	cost := quadraticCost(matrix)

	// Start points are drawn before any optimizer call so the result depends
	// only on the RNG state, never on what the optimizer consumes.
	starts := make([][]float64, opts.Trials)
	for t := range starts {
		starts[t] = make([]float64, n)
		for i := range starts[t] {
			starts[t][i] = opts.RNG.Float64()
		}
	}

	var best *OptimizeResult
	values := make([]float64, 0, opts.Trials)
	for t, x0 := range starts {
		res, err := co.MinimizeConstrained(cost, x0, box)
		if err != nil {
			return nil, err
		}
		if len(res.Params) != n {
			return nil, fmt.Errorf("optimizer returned %d params for %d variables: %w", len(res.Params), n, qubo.ErrValidation)
		}
		logrus.Debugf("relaxation trial %d/%d: value=%g", t+1, opts.Trials, res.Value)
		values = append(values, res.Value)
		if best == nil || math.IsNaN(best.Value) || res.Value < best.Value {
			best = res
		}
	}
	return &Result{
		Solution:    append([]float64(nil), best.Params...),
		Value:       best.Value,
		Path:        PathOptimizer,
		TrialValues: values,
	}, nil
}

// quadraticCost returns x ↦ xᵀPx with gradient (P + Pᵀ)x.
func quadraticCost(p mat.Matrix) CostFunction {
	n, _ := p.Dims()
	g := mat.NewDense(n, n, nil)
	g.Add(p, p.T())
	return CostFunction{
		Func: func(x []float64) float64 {
			v := mat.NewVecDense(n, x)
			return mat.Inner(v, p, v)
		},
		Grad: func(grad, x []float64) {
			out := mat.NewVecDense(n, grad)
			out.MulVec(g, mat.NewVecDense(n, x))
		},
	}
}

func prepare(p mat.Matrix, symmetrize bool) mat.Matrix {
	if symmetrize {
		return qubo.Symmetrize(p)
	}
	return p
}

// asSymmetric returns p as a mat.Symmetric. The quadratic form of (P + Pᵀ)/2
// equals that of P, so a non-symmetric P is replaced without changing the
// objective.
func asSymmetric(p mat.Matrix) mat.Symmetric {
	if s, ok := p.(mat.Symmetric); ok {
		return s
	}
	return qubo.Symmetrize(p)
}

func emptyResult() *Result {
	return &Result{Solution: []float64{}, Path: PathEmpty}
}

func isEmpty(p mat.Matrix) bool {
	r, _ := p.Dims()
	return r == 0
}

func checkSquare(p mat.Matrix) error {
	if p == nil {
		return fmt.Errorf("nil matrix: %w", qubo.ErrValidation)
	}
	r, c := p.Dims()
	if r != c {
		return fmt.Errorf("matrix must be square, got %dx%d: %w", r, c, qubo.ErrValidation)
	}
	return nil
}
