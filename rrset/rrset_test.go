package rrset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/rrset"
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

// naiveDegree recounts v's degree directly from the Store.
func naiveDegree(st *rrset.Store, v int) int {
	count := 0
	for i := 0; i < st.Len(); i++ {
		for _, u := range st.Sample(i) {
			if u == v {
				count++
				break
			}
		}
	}
	return count
}

// TestStore_AppendAndReset keeps samples and roots index-aligned.
func TestStore_AppendAndReset(t *testing.T) {
	var st rrset.Store
	st.Append([]int{3, 1}, 3)
	st.Append([]int{0}, 0)

	require.Equal(t, 2, st.Len())
	assert.Equal(t, []int{3, 1}, st.Sample(0))
	assert.Equal(t, 3, st.Root(0))
	assert.Equal(t, 0, st.Root(1))

	st.Reset()
	assert.Zero(t, st.Len())
}

// TestStore_ReserveSet fills reserved slots out of order.
func TestStore_ReserveSet(t *testing.T) {
	var st rrset.Store
	st.Append([]int{9}, 9)
	base := st.Reserve(3)
	require.Equal(t, 1, base)
	require.Equal(t, 4, st.Len())

	st.Set(base+2, []int{2}, 2)
	st.Set(base, []int{0}, 0)
	st.Set(base+1, []int{1}, 1)
	for i := 0; i < 3; i++ {
		assert.Equal(t, []int{i}, st.Sample(base+i))
		assert.Equal(t, i, st.Root(base+i))
	}
}

// TestIndex_DegreeInvariant: after a rebuild, Degree(v) equals the number of
// Store entries containing v and equals len(Hits(v)), for every node.
func TestIndex_DegreeInvariant(t *testing.T) {
	g := pathGraph(t, 10, 0.6)
	var st rrset.Store
	cas := cascade.NewReverseIC(g)
	rrset.AddSimulations(500, cas, g, &st, cascade.NewRand(21))

	ix := rrset.NewIndex(g.NumNodes())
	ix.Rebuild(&st)

	require.Equal(t, st.Len(), ix.Samples())
	for v := 0; v < g.NumNodes(); v++ {
		assert.Equal(t, naiveDegree(&st, v), ix.Degree(v), "node %d", v)
		assert.Len(t, ix.Hits(v), ix.Degree(v), "node %d", v)
	}
}

// TestIndex_RebuildIdempotent: two consecutive rebuilds without intervening
// sampling yield identical contents.
func TestIndex_RebuildIdempotent(t *testing.T) {
	g := pathGraph(t, 8, 0.5)
	var st rrset.Store
	cas := cascade.NewReverseIC(g)
	rrset.AddSimulations(200, cas, g, &st, cascade.NewRand(4))

	ix := rrset.NewIndex(g.NumNodes())
	ix.Rebuild(&st)

	degrees := make([]int, g.NumNodes())
	hits := make([][]int, g.NumNodes())
	for v := range degrees {
		degrees[v] = ix.Degree(v)
		hits[v] = append([]int(nil), ix.Hits(v)...)
	}

	ix.Rebuild(&st)
	for v := range degrees {
		assert.Equal(t, degrees[v], ix.Degree(v))
		assert.Equal(t, hits[v], ix.Hits(v))
	}
}

// TestIndex_ExtendMatchesRebuild: incremental extension after extra sampling
// agrees with a from-scratch rebuild.
func TestIndex_ExtendMatchesRebuild(t *testing.T) {
	g := pathGraph(t, 8, 0.5)
	var st rrset.Store
	cas := cascade.NewReverseIC(g)
	rng := cascade.NewRand(17)

	incremental := rrset.NewIndex(g.NumNodes())
	rrset.AddSimulations(100, cas, g, &st, rng)
	incremental.Extend(&st)
	rrset.AddSimulations(150, cas, g, &st, rng)
	incremental.Extend(&st)

	scratch := rrset.NewIndex(g.NumNodes())
	scratch.Rebuild(&st)

	require.Equal(t, scratch.Samples(), incremental.Samples())
	for v := 0; v < g.NumNodes(); v++ {
		assert.Equal(t, scratch.Degree(v), incremental.Degree(v))
		assert.Equal(t, scratch.Hits(v), incremental.Hits(v))
	}
}

// TestAddSimulationsParallel_InvariantAndAccounting: all reserved slots are
// filled, the index invariant holds, and edge accounting is positive.
func TestAddSimulationsParallel_InvariantAndAccounting(t *testing.T) {
	g := pathGraph(t, 12, 0.7)
	var st rrset.Store
	cas := cascade.NewReverseIC(g)

	edges, err := rrset.AddSimulationsParallel(400, 4, cas, g, &st, cascade.NewRand(33))
	require.NoError(t, err)
	require.Equal(t, 400, st.Len())
	assert.Positive(t, edges)

	for i := 0; i < st.Len(); i++ {
		require.NotEmpty(t, st.Sample(i), "slot %d left unfilled", i)
		assert.Equal(t, st.Root(i), st.Sample(i)[0])
	}

	ix := rrset.NewIndex(g.NumNodes())
	ix.Rebuild(&st)
	for v := 0; v < g.NumNodes(); v++ {
		assert.Equal(t, naiveDegree(&st, v), ix.Degree(v))
	}
}

// TestAddSimulationsParallel_Deterministic: a fixed (seed, workers) pair
// reproduces the exact store content.
func TestAddSimulationsParallel_Deterministic(t *testing.T) {
	g := pathGraph(t, 10, 0.5)

	run := func() *rrset.Store {
		var st rrset.Store
		_, err := rrset.AddSimulationsParallel(200, 3, cascade.NewReverseIC(g), g, &st, cascade.NewRand(5))
		require.NoError(t, err)
		return &st
	}
	a, b := run(), run()
	require.Equal(t, a.Len(), b.Len())
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Sample(i), b.Sample(i))
		assert.Equal(t, a.Root(i), b.Root(i))
	}
}

// TestAddSimulationsFrom restricts roots to the candidate set.
func TestAddSimulationsFrom(t *testing.T) {
	g := pathGraph(t, 10, 0.3)
	var st rrset.Store
	cas := cascade.NewReverseIC(g)
	rrset.AddSimulationsFrom(100, cas, []int{7, 8}, &st, cascade.NewRand(2))

	require.Equal(t, 100, st.Len())
	for i := 0; i < st.Len(); i++ {
		assert.Contains(t, []int{7, 8}, st.Root(i))
	}
}

// TestAddCreditSimulations_Conservation: each sample distributes exactly
// total credit 1 across its members, so all credit sums to the sample count.
func TestAddCreditSimulations_Conservation(t *testing.T) {
	g := pathGraph(t, 10, 0.5)
	credit := make([]float64, g.NumNodes())
	hits := make([]int, g.NumNodes())
	cas := cascade.NewReverseIC(g)

	const num = 1000
	edges := rrset.AddCreditSimulations(num, cas, g, credit, hits, cascade.NewRand(6))
	assert.Positive(t, edges)

	sum := 0.0
	for _, c := range credit {
		sum += c
	}
	assert.InDelta(t, float64(num), sum, 1e-6, "credit must conserve across nodes")

	totalHits := 0
	for _, h := range hits {
		totalHits += h
	}
	assert.GreaterOrEqual(t, totalHits, num, "each sample hits at least its root")
}

// TestGreedyStep picks the single best key and is deterministic on ties.
func TestGreedyStep(t *testing.T) {
	hits := map[int][]int{
		4: {0, 1},
		1: {2, 3},
		7: {3},
	}
	cov := rrset.NewKeyedCoverage(4, nil, hits, rrset.LessNode)

	pick, ok := rrset.GreedyStep(cov)
	require.True(t, ok)
	assert.Equal(t, 1, pick.Key, "tie between nodes 1 and 4 resolves to 1")
	assert.Equal(t, 2.0, pick.Gain)

	pick, ok = rrset.GreedyStep(cov)
	require.True(t, ok)
	assert.Equal(t, 4, pick.Key)

	_, ok = rrset.GreedyStep(cov)
	assert.False(t, ok, "everything covered")
}

// TestRunGreedy_Basic: hand-built coverage where node 0 dominates.
func TestRunGreedy_Basic(t *testing.T) {
	var st rrset.Store
	st.Append([]int{0, 1}, 1)
	st.Append([]int{0, 2}, 2)
	st.Append([]int{0}, 0)
	st.Append([]int{3}, 3)

	ix := rrset.NewIndex(4)
	ix.Rebuild(&st)

	picks, cum := rrset.RunGreedy(2, rrset.NewCoverage(ix))
	require.Len(t, picks, 2)
	assert.Equal(t, 0, picks[0].Key, "node 0 covers three samples")
	assert.Equal(t, 3.0, picks[0].Gain)
	assert.Equal(t, 3, picks[1].Key, "only node 3 has remaining gain")
	assert.Equal(t, []float64{3, 4}, cum)
}

// TestRunGreedy_TieBreak: equal coverage resolves to the lowest node id.
func TestRunGreedy_TieBreak(t *testing.T) {
	var st rrset.Store
	st.Append([]int{5}, 5)
	st.Append([]int{2}, 2)

	ix := rrset.NewIndex(6)
	ix.Rebuild(&st)

	picks, _ := rrset.RunGreedy(1, rrset.NewCoverage(ix))
	require.Len(t, picks, 1)
	assert.Equal(t, 2, picks[0].Key)
}

// TestRunGreedy_Monotone: cumulative coverage is non-decreasing and strictly
// increasing while picks continue; selection stops when everything is covered.
func TestRunGreedy_Monotone(t *testing.T) {
	g := pathGraph(t, 15, 0.5)
	var st rrset.Store
	cas := cascade.NewReverseIC(g)
	rrset.AddSimulations(600, cas, g, &st, cascade.NewRand(8))

	ix := rrset.NewIndex(g.NumNodes())
	ix.Rebuild(&st)

	picks, cum := rrset.RunGreedy(g.NumNodes()+5, rrset.NewCoverage(ix))
	require.NotEmpty(t, picks)
	for i := 1; i < len(cum); i++ {
		assert.Greater(t, cum[i], cum[i-1], "strictly increasing until exhaustion")
	}
	assert.LessOrEqual(t, cum[len(cum)-1], float64(st.Len()))
	assert.LessOrEqual(t, len(picks), g.NumNodes(), "never more picks than nodes with positive gain")
}

// TestRunGreedy_Weighted: per-sample weights steer selection.
func TestRunGreedy_Weighted(t *testing.T) {
	hits := map[rrset.NodeTime][]int{
		{Node: 0, Time: 0}: {0, 1},
		{Node: 1, Time: 1}: {2},
	}
	weights := []float64{0.1, 0.1, 5.0}
	cov := rrset.NewKeyedCoverage(3, weights, hits, rrset.LessNodeTime)

	picks, cum := rrset.RunGreedy(2, cov)
	require.Len(t, picks, 2)
	assert.Equal(t, rrset.NodeTime{Node: 1, Time: 1}, picks[0].Key, "heavier sample wins despite lower degree")
	assert.InDelta(t, 5.0, cum[0], 1e-12)
	assert.InDelta(t, 5.2, cum[1], 1e-12)
}

// TestRunGreedy_ZeroGainStops: once every sample is covered, remaining
// budget is left unused.
func TestRunGreedy_ZeroGainStops(t *testing.T) {
	var st rrset.Store
	st.Append([]int{1, 2}, 1)

	ix := rrset.NewIndex(3)
	ix.Rebuild(&st)

	picks, _ := rrset.RunGreedy(3, rrset.NewCoverage(ix))
	assert.Len(t, picks, 1, "a single pick covers the only sample")
}
