package rrinfl

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/takhmin/iminfl/bounds"
	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/rrset"
	"github.com/takhmin/iminfl/simgraph"
)

// ShapleyValue is one node's approximate Shapley value of the influence game.
type ShapleyValue struct {
	Node  int
	Value float64
}

// ShapleyResult is the output of the ASV-RR attribution pass.
type ShapleyResult struct {
	// Values holds the top-k nodes by Shapley value, descending; ties
	// break toward the smaller node id.
	Values []ShapleyValue

	// HitCount[v] is the number of RR samples that contained v.
	HitCount []int

	// Theta is the number of RR samples generated.
	Theta int

	EdgesVisited int64
	Elapsed      time.Duration
}

// ShapleyInfl computes approximate Shapley values of nodes via RR sampling
// (ASV-RR): each sample apportions credit 1/|sample| to every member, a
// fair-division alternative to winner-takes-all greedy coverage. No greedy
// loop runs and no samples are stored; the pass streams.
type ShapleyInfl struct{}

// Build runs the attribution pass with θ from the Chernoff-style bound and
// returns the topk nodes by Shapley value.
func (ShapleyInfl) Build(g simgraph.Graph, eps, ell float64, topk int, opts Options) (*ShapleyResult, error) {
	credit, hits, res, err := shapleyPass(g, eps, ell, topk, opts)
	if err != nil {
		return nil, err
	}
	scale := float64(g.NumNodes()) / float64(res.Theta)
	res.Values = topValues(credit, scale, topk)
	res.HitCount = hits
	return res, nil
}

// SNIInfl reports single-node influence from the same attribution pass:
// n·P(v ∈ RR) estimated from the hit counts. It differs from ShapleyInfl
// only in how the accumulators are reported.
type SNIInfl struct{}

// Build runs the attribution pass and returns the topk nodes by estimated
// single-node influence.
func (SNIInfl) Build(g simgraph.Graph, eps, ell float64, topk int, opts Options) (*ShapleyResult, error) {
	_, hits, res, err := shapleyPass(g, eps, ell, topk, opts)
	if err != nil {
		return nil, err
	}
	influence := make([]float64, len(hits))
	for v, h := range hits {
		influence[v] = float64(h)
	}
	scale := float64(g.NumNodes()) / float64(res.Theta)
	res.Values = topValues(influence, scale, topk)
	res.HitCount = hits
	return res, nil
}

// BuildFor restricts the attribution pass's sample roots to targets, so the
// reported values estimate each node's expected influence within that target
// set only. Duplicate targets skew the estimate and are rejected.
func (SNIInfl) BuildFor(g simgraph.Graph, targets []int, eps, ell float64, topk int, opts Options) (*ShapleyResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NumNodes()
	if len(targets) == 0 || topk <= 0 || eps <= 0 || eps >= 1 {
		return nil, fmt.Errorf("%w: targets=%d topk=%d eps=%g",
			bounds.ErrInvalidParameter, len(targets), topk, eps)
	}
	seen := make(map[int]bool, len(targets))
	for _, v := range targets {
		if v < 0 || v >= n || seen[v] {
			return nil, fmt.Errorf("%w: bad target %d", bounds.ErrInvalidParameter, v)
		}
		seen[v] = true
	}
	if topk > n {
		topk = n
	}

	start := time.Now()
	theta := int(math.Ceil(bounds.ShapleyRounds(n, eps, ell)))
	var st rrset.Store
	cas := opts.reverse(g)
	rng := cascade.NewRand(opts.Seed)
	edges := rrset.AddSimulationsFrom(theta, cas, targets, &st, rng)

	ix := rrset.NewIndex(n)
	ix.Rebuild(&st)
	influence := make([]float64, n)
	hits := make([]int, n)
	for v := 0; v < n; v++ {
		hits[v] = ix.Degree(v)
		influence[v] = float64(hits[v])
	}

	res := &ShapleyResult{
		Values:       topValues(influence, float64(len(targets))/float64(theta), topk),
		HitCount:     hits,
		Theta:        theta,
		EdgesVisited: edges,
		Elapsed:      time.Since(start),
	}
	return res, nil
}

// shapleyPass validates, sizes θ, and streams the credit accumulation.
func shapleyPass(g simgraph.Graph, eps, ell float64, topk int, opts Options) ([]float64, []int, *ShapleyResult, error) {
	if g == nil {
		return nil, nil, nil, ErrNilGraph
	}
	n := g.NumNodes()
	// topk is a reporting cut, not a budget: topk == n is legitimate,
	// so the k < n shape check does not apply here.
	if n <= 0 || topk <= 0 || eps <= 0 || eps >= 1 {
		return nil, nil, nil, fmt.Errorf("%w: n=%d topk=%d eps=%g",
			bounds.ErrInvalidParameter, n, topk, eps)
	}
	if topk > n {
		topk = n
	}

	start := time.Now()
	theta := int(math.Ceil(bounds.ShapleyRounds(n, eps, ell)))
	credit := make([]float64, n)
	hits := make([]int, n)
	cas := opts.reverse(g)
	rng := cascade.NewRand(opts.Seed)
	edges := rrset.AddCreditSimulations(theta, cas, g, credit, hits, rng)

	res := &ShapleyResult{
		Theta:        theta,
		EdgesVisited: edges,
		Elapsed:      time.Since(start),
	}
	return credit, hits, res, nil
}

// topValues scales the raw accumulators and returns the topk entries,
// descending by value with id as the deterministic tie-break.
func topValues(raw []float64, scale float64, topk int) []ShapleyValue {
	all := make([]ShapleyValue, len(raw))
	for v, c := range raw {
		all[v] = ShapleyValue{Node: v, Value: c * scale}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Value != all[j].Value {
			return all[i].Value > all[j].Value
		}
		return all[i].Node < all[j].Node
	})
	if topk < len(all) {
		all = all[:topk]
	}
	return all
}
