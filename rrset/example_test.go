package rrset_test

import (
	"fmt"

	"github.com/takhmin/iminfl/rrset"
)

// ExampleRunGreedy covers four hand-built samples: node 0 appears in three
// of them and wins the first pick, node 3 mops up the rest.
func ExampleRunGreedy() {
	var st rrset.Store
	st.Append([]int{0, 1}, 1)
	st.Append([]int{0, 2}, 2)
	st.Append([]int{0}, 0)
	st.Append([]int{3}, 3)

	ix := rrset.NewIndex(4)
	ix.Rebuild(&st)

	picks, cum := rrset.RunGreedy(2, rrset.NewCoverage(ix))
	for i, p := range picks {
		fmt.Printf("pick %d: node %d gain %.0f (covered %.0f)\n", i, p.Key, p.Gain, cum[i])
	}
	// Output:
	// pick 0: node 0 gain 3 (covered 3)
	// pick 1: node 3 gain 1 (covered 4)
}
