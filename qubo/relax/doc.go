// Package relax solves the continuous relaxation of a QUBO over the unit box.
//
// SolveRelaxation derives the coefficient matrix P of a binary model and
// checks it with IsPositiveSemidefinite:
//   - PSD: minimize ½ xᵀPx subject to 0 ≤ x ≤ 1 with a ConvexBackend
//   - otherwise: minimize xᵀPx from Options.Trials uniform random starts with
//     a ConstrainedOptimizer and keep the lowest value
//
// Regularize maps a relaxed solution to rotation angles for warm-starting
// variational circuits.
//
// Collaborators are interfaces defined here; implementations live in
// sub-packages:
//   - qubo/relax/convex/: default ConvexBackend, registered via init() into
//     NewConvexBackendFunc
//   - qubo/relax/gonumopt/: ConstrainedOptimizer on top of gonum/optimize
package relax
