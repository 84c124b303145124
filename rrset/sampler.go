package rrset

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/simgraph"
)

// AddSimulations appends num RR samples to st, each rooted at a node drawn
// uniformly at random from g. Returns the number of edges examined while
// generating them.
func AddSimulations(num int, cas cascade.Reverse, g simgraph.Graph, st *Store, rng *rand.Rand) int64 {
	n := g.NumNodes()
	if num <= 0 || n == 0 {
		return 0
	}
	before := cas.EdgesVisited()
	for i := 0; i < num; i++ {
		root := rng.Intn(n)
		st.Append(cas.Sample(rng, root), root)
	}
	return cas.EdgesVisited() - before
}

// AddSimulationsFrom is AddSimulations with roots restricted to a candidate
// set, used by single-node-influence variants. An empty candidate set is a
// no-op.
func AddSimulationsFrom(num int, cas cascade.Reverse, roots []int, st *Store, rng *rand.Rand) int64 {
	if num <= 0 || len(roots) == 0 {
		return 0
	}
	before := cas.EdgesVisited()
	for i := 0; i < num; i++ {
		root := roots[rng.Intn(len(roots))]
		st.Append(cas.Sample(rng, root), root)
	}
	return cas.EdgesVisited() - before
}

// AddCreditSimulations runs the Shapley attribution pass: num RR samples are
// generated and immediately folded into the per-node accumulators instead of
// being stored. Each sample distributes total credit 1, split 1/|sample|
// across its members, into credit; hits counts plain membership. Returns the
// edges examined. credit and hits must both have length g.NumNodes().
func AddCreditSimulations(num int, cas cascade.Reverse, g simgraph.Graph, credit []float64, hits []int, rng *rand.Rand) int64 {
	n := g.NumNodes()
	if num <= 0 || n == 0 {
		return 0
	}
	before := cas.EdgesVisited()
	for i := 0; i < num; i++ {
		rr := cas.Sample(rng, rng.Intn(n))
		share := 1 / float64(len(rr))
		for _, v := range rr {
			credit[v] += share
			hits[v]++
		}
	}
	return cas.EdgesVisited() - before
}

// AddSimulationsParallel fans num sample generations out across workers
// goroutines. Each worker owns a cloned cascade, a derived RNG stream, and a
// disjoint range of pre-reserved Store slots, so the Store needs no lock and
// the result is deterministic for a fixed (seed, workers) pair. The caller's
// Index must be extended or rebuilt after this returns.
func AddSimulationsParallel(num, workers int, cas cascade.Reverse, g simgraph.Graph, st *Store, rng *rand.Rand) (int64, error) {
	n := g.NumNodes()
	if num <= 0 || n == 0 {
		return 0, nil
	}
	if workers <= 1 {
		return AddSimulations(num, cas, g, st, rng), nil
	}
	if workers > num {
		workers = num
	}

	base := st.Reserve(num)
	clones := make([]cascade.Reverse, workers)
	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * num / workers
		hi := (w + 1) * num / workers
		wrng := cascade.DeriveRand(rng, uint64(w))
		wcas := cas.Clone()
		clones[w] = wcas
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				root := wrng.Intn(n)
				st.Set(base+i, wcas.Sample(wrng, root), root)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	var edges int64
	for _, c := range clones {
		edges += c.EdgesVisited()
	}
	return edges, nil
}
