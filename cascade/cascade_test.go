package cascade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/simgraph"
)

// pathGraph builds 0→1→...→(n-1) with every edge probability p.
func pathGraph(t *testing.T, n int, p float64) *simgraph.Digraph {
	t.Helper()
	var b simgraph.Builder
	for i := 0; i < n-1; i++ {
		require.NoError(t, b.AddEdge(i, i+1, p))
	}
	return b.Build()
}

// TestReverseIC_RootMembership: the root is always the first member of its
// own sample, for every root and across many draws.
func TestReverseIC_RootMembership(t *testing.T) {
	g := pathGraph(t, 6, 0.5)
	cas := cascade.NewReverseIC(g)
	rng := cascade.NewRand(7)

	for draw := 0; draw < 200; draw++ {
		for root := 0; root < g.NumNodes(); root++ {
			rr := cas.Sample(rng, root)
			require.NotEmpty(t, rr)
			assert.Equal(t, root, rr[0])
		}
	}
}

// TestReverseIC_DeterministicPath: on a probability-1 path the RR set of
// node v is exactly {v, v-1, ..., 0}.
func TestReverseIC_DeterministicPath(t *testing.T) {
	g := pathGraph(t, 5, 1.0)
	cas := cascade.NewReverseIC(g)
	rng := cascade.NewRand(1)

	rr := cas.Sample(rng, 4)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, rr)

	rr = cas.Sample(rng, 2)
	assert.ElementsMatch(t, []int{0, 1, 2}, rr)
}

// TestReverseIC_ZeroProbability: with p=0 no edge is ever live, so every
// sample is the singleton root.
func TestReverseIC_ZeroProbability(t *testing.T) {
	g := pathGraph(t, 4, 0.0)
	cas := cascade.NewReverseIC(g)
	rng := cascade.NewRand(3)

	for root := 0; root < 4; root++ {
		assert.Equal(t, []int{root}, cas.Sample(rng, root))
	}
}

// TestReverseIC_DepthLimit truncates reachability at the configured hop count.
func TestReverseIC_DepthLimit(t *testing.T) {
	g := pathGraph(t, 6, 1.0)
	cas := cascade.NewReverseICDepth(g, 2)
	rng := cascade.NewRand(5)

	rr := cas.Sample(rng, 5)
	assert.ElementsMatch(t, []int{3, 4, 5}, rr, "two hops back from node 5")
}

// TestReverseIC_EdgeAccounting: on the deterministic path each sample from
// node v examines exactly v edges, and the counter accumulates while Clone
// starts from zero.
func TestReverseIC_EdgeAccounting(t *testing.T) {
	g := pathGraph(t, 5, 1.0)
	cas := cascade.NewReverseIC(g)
	rng := cascade.NewRand(2)

	cas.Sample(rng, 4)
	assert.Equal(t, int64(4), cas.EdgesVisited())
	cas.Sample(rng, 2)
	assert.Equal(t, int64(6), cas.EdgesVisited())

	clone := cas.Clone()
	assert.Equal(t, int64(0), clone.EdgesVisited())
	clone.Sample(rng, 3)
	assert.Equal(t, int64(3), clone.EdgesVisited())
	assert.Equal(t, int64(6), cas.EdgesVisited(), "clone does not share the counter")
}

// TestSpread_Deterministic: probability-1 path seeded at 0 activates all
// nodes in every round.
func TestSpread_Deterministic(t *testing.T) {
	g := pathGraph(t, 5, 1.0)
	got := cascade.Spread(g, []int{0}, 50, cascade.NewRand(9))
	assert.InDelta(t, 5.0, got, 1e-12)

	got = cascade.Spread(g, []int{4}, 50, cascade.NewRand(9))
	assert.InDelta(t, 1.0, got, 1e-12, "sink node influences only itself")
}

// TestSpread_DegenerateInputs: zero rounds and duplicate or out-of-range
// seeds are handled without panicking.
func TestSpread_DegenerateInputs(t *testing.T) {
	g := pathGraph(t, 3, 1.0)
	assert.Zero(t, cascade.Spread(g, []int{0}, 0, cascade.NewRand(1)))
	got := cascade.Spread(g, []int{0, 0, -5, 99}, 10, cascade.NewRand(1))
	assert.InDelta(t, 3.0, got, 1e-12)
}

// TestNewRand_SeedPolicy: seed 0 aliases the fixed default; distinct seeds
// give distinct streams; DeriveRand decorrelates stream ids.
func TestNewRand_SeedPolicy(t *testing.T) {
	a, b := cascade.NewRand(0), cascade.NewRand(0)
	assert.Equal(t, a.Int63(), b.Int63(), "seed 0 must be stable")

	c := cascade.NewRand(42)
	d := cascade.NewRand(43)
	assert.NotEqual(t, c.Int63(), d.Int63())

	base := cascade.NewRand(42)
	s0 := cascade.DeriveRand(base, 0)
	s1 := cascade.DeriveRand(base, 1)
	assert.NotEqual(t, s0.Int63(), s1.Int63())
}

// TestReverseIC_Reproducible: identical seeds yield identical sample
// sequences.
func TestReverseIC_Reproducible(t *testing.T) {
	g := pathGraph(t, 8, 0.4)
	first := cascade.NewReverseIC(g)
	second := cascade.NewReverseIC(g)
	rngA, rngB := cascade.NewRand(11), cascade.NewRand(11)

	for i := 0; i < 100; i++ {
		root := i % g.NumNodes()
		assert.Equal(t, first.Sample(rngA, root), second.Sample(rngB, root))
	}
}
