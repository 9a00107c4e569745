package relax_test

// Blank import triggers qubo/relax/convex's init(), which registers
// NewConvexBackendFunc. This allows package relax's internal test files to
// use the default backend without directly importing qubo/relax/convex
// (which would create an import cycle).
import _ "github.com/inference-sim/qubo/qubo/relax/convex"
