package relax

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/inference-sim/qubo/qubo"
)

// DefaultPSDEpsilon is the eigenvalue floor used by IsPositiveSemidefinite.
const DefaultPSDEpsilon = 1e-15

// IsPositiveSemidefinite reports whether the smallest eigenvalue of m is at
// least epsilon. Symmetric inputs use the symmetric eigensolver; any other
// square input is decomposed in general form and the real parts of its
// eigenvalues are compared. For a non-symmetric m that is not a statement
// about the quadratic form xᵀmx; pass (m + mᵀ)/2 to test convexity.
func IsPositiveSemidefinite(m mat.Matrix, epsilon float64) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("IsPositiveSemidefinite: nil matrix: %w", qubo.ErrValidation)
	}
	r, c := m.Dims()
	if r != c {
		return false, fmt.Errorf("IsPositiveSemidefinite: non-square %dx%d matrix: %w", r, c, qubo.ErrValidation)
	}
	if r == 0 {
		return false, fmt.Errorf("IsPositiveSemidefinite: empty matrix: %w", qubo.ErrValidation)
	}
	values, err := eigenvalues(m)
	if err != nil {
		return false, err
	}
	return floats.Min(values) >= epsilon, nil
}

func eigenvalues(m mat.Matrix) ([]float64, error) {
	if sym, ok := m.(mat.Symmetric); ok {
		var es mat.EigenSym
		if !es.Factorize(sym, false) {
			return nil, fmt.Errorf("symmetric eigendecomposition did not converge: %w", qubo.ErrDomain)
		}
		return es.Values(nil), nil
	}

	var eig mat.Eigen
	if !eig.Factorize(m, mat.EigenNone) {
		return nil, fmt.Errorf("eigendecomposition did not converge: %w", qubo.ErrDomain)
	}
	values := eig.Values(nil)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = real(v)
	}
	return out, nil
}
