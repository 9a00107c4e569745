// Package qubo provides the energy models for Quadratic Unconstrained Binary
// Optimization and their exact transform to and from Ising form.
//
// # Reading Guide
//
// Start with these files:
//   - model.go: Model, the immutable energy function over BINARY or SPIN variables
//   - convert.go: QUBOToIsing / IsingToQUBO, the energy-preserving substitution z = 1 - 2x
//   - matrix.go: CoefficientMatrix, the gonum matrix view consumed by qubo/relax
//   - samples.go: bitstring and sample-set bridge, bitstring evaluation
//
// # Architecture
//
// This package holds data and exact algebra only. Numerical work lives in
// sub-packages:
//   - qubo/relax/: positive-semidefiniteness check, box-constrained quadratic
//     relaxation and angle regularization
//   - qubo/relax/convex/: default convex QP backend, registered via init()
//   - qubo/relax/gonumopt/: constrained optimizer backed by gonum/optimize
//   - qubo/store/: JSON, YAML and msgpack persistence of models and sample sets
//
// # Errors
//
// All packages return ErrValidation, ErrConfiguration or ErrDomain wrapped
// with context; match them with errors.Is.
//
// # Determinism
//
// Randomized operations take an explicit *rand.Rand. PartitionedRNG derives
// isolated, reproducible streams per subsystem from a single seed.
package qubo
