// register.go wires the convex backend into the relax package's registration
// variable (NewConvexBackendFunc). This init() runs when any package imports
// qubo/relax/convex, breaking the import cycle between relax/ (interface
// owner) and relax/convex/ (implementation).
package convex

import "github.com/inference-sim/qubo/qubo/relax"

func init() {
	relax.NewConvexBackendFunc = func() relax.ConvexBackend { return New() }
}
