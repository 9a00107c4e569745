// Package testutil provides shared test infrastructure for the qubo packages.
// It consolidates assignment enumeration and slice assertion helpers used
// across qubo/ and qubo/relax/ test packages.
package testutil

import (
	"math"
	"testing"
)

// AllBinaryAssignments returns every assignment of variables to {0, 1}, in
// binary counting order with vars[0] as the least significant bit.
func AllBinaryAssignments(vars []int) []map[int]int {
	n := len(vars)
	out := make([]map[int]int, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		a := make(map[int]int, n)
		for i, v := range vars {
			a[v] = (mask >> i) & 1
		}
		out = append(out, a)
	}
	return out
}

// AssertSliceNear compares two float64 slices element-wise with absolute tolerance.
func AssertSliceNear(t *testing.T, name string, want, got []float64, absTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: got %d elements, want %d", name, len(got), len(want))
	}
	for i := range want {
		if math.Abs(want[i]-got[i]) > absTol {
			t.Errorf("%s[%d]: got %v, want %v (absTol=%v)", name, i, got[i], want[i], absTol)
		}
	}
}
