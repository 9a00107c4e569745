package qubo

import "errors"

// Error taxonomy shared by qubo and its sub-packages.
//
// Callers match with errors.Is. Functions return these wrapped with context,
// e.g. fmt.Errorf("pair (%d,%d): %w", u, v, ErrValidation).
var (
	// ErrValidation marks malformed input: out-of-domain values, dimension
	// mismatches, wrong vartype, out-of-range regularization input.
	ErrValidation = errors.New("qubo: validation error")

	// ErrConfiguration marks a collaborator that lacks a required capability,
	// e.g. an optimizer without constraint support or a missing RNG.
	ErrConfiguration = errors.New("qubo: configuration error")

	// ErrDomain marks a failed mathematical precondition, e.g. a convex solve
	// requested on a matrix that is not positive semidefinite.
	ErrDomain = errors.New("qubo: domain error")
)
