package relax_test

import (
	"fmt"

	"github.com/inference-sim/qubo/qubo/relax"
)

func ExampleRegularize() {
	angles, err := relax.Regularize([]float64{0, 0.5, 1}, 0.1)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f %.4f %.4f\n", angles[0], angles[1], angles[2])
	// Output: 0.6435 1.5708 2.4981
}
