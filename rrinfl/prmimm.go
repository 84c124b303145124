package rrinfl

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/takhmin/iminfl/bounds"
	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/rrset"
	"github.com/takhmin/iminfl/simgraph"
)

// Policy selects the seed-placement strategy of PRMIMM's FindTopK dispatch.
type Policy int

const (
	// PolicyGreedy runs weighted lazy greedy over all (node, round) pairs.
	PolicyGreedy Policy = iota

	// PolicyUniform splits the budget evenly across rounds, greedy within
	// each round.
	PolicyUniform

	// PolicyDecreasing gives earlier rounds proportionally more budget.
	PolicyDecreasing

	// PolicyRandom draws the round of each pick uniformly at random, then
	// picks greedily within it.
	PolicyRandom

	// PolicyReuse lets a seed placed at round t also cover later rounds'
	// samples, a weighted union of the per-round hit indices.
	PolicyReuse
)

// WeightMode selects how a sample's weight decays with its round.
type WeightMode int

const (
	// WeightUniform weighs every round equally.
	WeightUniform WeightMode = iota

	// WeightHyperbolic decays as kp₀/(kp₀ + kb₀·m₀·t).
	WeightHyperbolic

	// WeightGeometric decays as (kb₀/kp₀)^(t/m₀).
	WeightGeometric
)

// Pricing-model constants carried from the reference parameterization.
const (
	prmKP0 = 990.0
	prmKB0 = 10.0
	prmM0  = 50.0
)

// WeightIter returns the weight applied to a round-t sample under mode.
// Every mode yields 1 at t=0 and never increases with t.
func WeightIter(mode WeightMode, t int) float64 {
	switch mode {
	case WeightHyperbolic:
		return prmKP0 / (prmKP0 + prmKB0*prmM0*float64(t))
	case WeightGeometric:
		return math.Pow(prmKB0/prmKP0, float64(t)/prmM0)
	default:
		return 1
	}
}

// PRMIMM is the time-indexed IMM driver: seeds are (node, round) pairs over
// rounds 0..maxTime-1, each round backed by its own RR sample family, with
// round weights from WeightMode and seed placement from Policy.
type PRMIMM struct {
	Policy     Policy
	WeightMode WeightMode
}

// Build selects k (node, round) seeds. With maxTime=1, a single unweighted
// round remains and the run reduces to IMM's behavior. mode selects the
// original or erratum-corrected bounds, as in IMM.
func (p PRMIMM) Build(g simgraph.Graph, k, maxTime int, eps, ell float64, mode bounds.Mode, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if maxTime < 1 {
		return nil, fmt.Errorf("%w: maxTime=%d", bounds.ErrInvalidParameter, maxTime)
	}
	n := g.NumNodes()
	if err := bounds.Validate(n, k, eps); err != nil {
		return nil, err
	}

	ps := newPRMState(g, maxTime, opts)
	log := opts.logger()
	start := time.Now()

	epsPrime := math.Sqrt2 * eps
	lambdaPrime := bounds.PRMLambdaPrime(epsPrime, k, ell, n, maxTime, mode)
	lb := 1.0
	found := false
	rounds := int(math.Ceil(math.Log2(float64(n)))) - 1
	if rounds < 1 {
		rounds = 1
	}
	if limit := opts.maxDoubling(); rounds > limit {
		rounds = limit
	}
	for i := 1; i <= rounds; i++ {
		x := float64(n) / math.Pow(2, float64(i))
		perBucket := int(math.Ceil(lambdaPrime / x / float64(maxTime)))
		if err := ps.sampleTo(perBucket); err != nil {
			return nil, err
		}
		// the bound search always probes with the weighted greedy; the
		// alternative policies only shape the final selection
		_, cum := rrset.RunGreedy(k, ps.coverage(p.WeightMode, false))
		if est := ps.influence(cum); est >= (1+epsPrime)*x {
			lb = est / (1 + epsPrime)
			found = true
			break
		}
	}
	if !found {
		log.Warn("prmimm: lower-bound search exhausted, proceeding with lb=1",
			"samples", ps.total())
	}

	theta := int(math.Ceil(bounds.PRMLambdaStar(eps, k, ell, n, maxTime, mode) / lb))
	perBucket := (theta + maxTime - 1) / maxTime
	if mode == bounds.ModeCorrected {
		ps.reset()
	}
	if err := ps.sampleTo(perBucket); err != nil {
		return nil, err
	}

	picks, cum := p.FindTopK(ps, k)
	seeds := make([]Seed, len(picks))
	for i, pk := range picks {
		seeds[i] = Seed{Node: pk.Key.Node, Time: pk.Key.Time}
	}
	influence := make([]float64, len(cum))
	scale := float64(n) / float64(max(ps.perBucket(), 1))
	for i, c := range cum {
		influence[i] = c * scale
	}
	return &Result{
		Algorithm:       "prmimm",
		Seeds:           seeds,
		Influence:       influence,
		SamplesPerRound: ps.samplesPerRound(),
		Theta:           ps.total(),
		EdgesVisited:    ps.edges,
		Elapsed:         time.Since(start),
	}, nil
}

// FindTopK dispatches the configured seed-placement policy over the current
// sample families.
func (p PRMIMM) FindTopK(ps *prmState, k int) ([]rrset.Pick[rrset.NodeTime], []float64) {
	switch p.Policy {
	case PolicyUniform:
		return ps.splitGreedy(p.WeightMode, splitEven(k, ps.maxTime))
	case PolicyDecreasing:
		return ps.splitGreedy(p.WeightMode, splitDecreasing(k, ps.maxTime))
	case PolicyRandom:
		return ps.randomGreedy(k, p.WeightMode)
	case PolicyReuse:
		return rrset.RunGreedy(k, ps.coverage(p.WeightMode, true))
	default:
		return rrset.RunGreedy(k, ps.coverage(p.WeightMode, false))
	}
}

// prmState carries the per-round sample families of one PRMIMM run.
type prmState struct {
	g       simgraph.Graph
	cas     cascade.Reverse
	rng     *rand.Rand
	opts    Options
	maxTime int
	stores  []*rrset.Store
	ixs     []*rrset.Index
	edges   int64
}

func newPRMState(g simgraph.Graph, maxTime int, opts Options) *prmState {
	ps := &prmState{
		g:       g,
		cas:     opts.reverse(g),
		rng:     cascade.NewRand(opts.Seed),
		opts:    opts,
		maxTime: maxTime,
		stores:  make([]*rrset.Store, maxTime),
		ixs:     make([]*rrset.Index, maxTime),
	}
	for t := 0; t < maxTime; t++ {
		ps.stores[t] = &rrset.Store{}
		ps.ixs[t] = rrset.NewIndex(g.NumNodes())
	}
	return ps
}

// sampleTo grows every round's family to at least perBucket samples.
func (ps *prmState) sampleTo(perBucket int) error {
	for t := 0; t < ps.maxTime; t++ {
		delta := perBucket - ps.stores[t].Len()
		if delta <= 0 {
			continue
		}
		edges, err := rrset.AddSimulationsParallel(delta, ps.opts.Workers, ps.cas, ps.g, ps.stores[t], ps.rng)
		if err != nil {
			return err
		}
		ps.edges += edges
		ps.ixs[t].Extend(ps.stores[t])
	}
	return nil
}

func (ps *prmState) reset() {
	for t := 0; t < ps.maxTime; t++ {
		ps.stores[t].Reset()
		ps.ixs[t] = rrset.NewIndex(ps.g.NumNodes())
	}
}

func (ps *prmState) total() int {
	sum := 0
	for _, st := range ps.stores {
		sum += st.Len()
	}
	return sum
}

func (ps *prmState) perBucket() int {
	if ps.maxTime == 0 {
		return 0
	}
	return ps.stores[0].Len()
}

func (ps *prmState) samplesPerRound() []int {
	out := make([]int, ps.maxTime)
	for t, st := range ps.stores {
		out[t] = st.Len()
	}
	return out
}

// influence scales a cumulative weighted coverage trace to an estimated
// spread using the per-round sample count.
func (ps *prmState) influence(cum []float64) float64 {
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1] * float64(ps.g.NumNodes()) / float64(max(ps.perBucket(), 1))
}

// coverage assembles the (node, round)-keyed coverage over all families.
// Samples are numbered globally (round families occupy consecutive index
// ranges) and weighted by their round. When reuse is true, key (v,t) also
// covers samples of every later round containing v, the weighted-union
// reading of sample reuse across rounds.
func (ps *prmState) coverage(wm WeightMode, reuse bool) *rrset.Coverage[rrset.NodeTime] {
	offsets := make([]int, ps.maxTime+1)
	for t := 0; t < ps.maxTime; t++ {
		offsets[t+1] = offsets[t] + ps.stores[t].Len()
	}
	weights := make([]float64, offsets[ps.maxTime])
	for t := 0; t < ps.maxTime; t++ {
		w := WeightIter(wm, t)
		for i := offsets[t]; i < offsets[t+1]; i++ {
			weights[i] = w
		}
	}

	hits := make(map[rrset.NodeTime][]int)
	for t := 0; t < ps.maxTime; t++ {
		for v := 0; v < ps.g.NumNodes(); v++ {
			local := ps.ixs[t].Hits(v)
			if len(local) == 0 {
				continue
			}
			global := make([]int, len(local))
			for i, idx := range local {
				global[i] = offsets[t] + idx
			}
			if !reuse {
				hits[rrset.NodeTime{Node: v, Time: t}] = global
				continue
			}
			// reuse: v placed at any round t' ≤ t covers this family too
			for placed := 0; placed <= t; placed++ {
				key := rrset.NodeTime{Node: v, Time: placed}
				hits[key] = append(hits[key], global...)
			}
		}
	}
	return rrset.NewKeyedCoverage(offsets[ps.maxTime], weights, hits, rrset.LessNodeTime)
}

// bucketCoverage restricts coverage to a single round's family, with local
// sample numbering.
func (ps *prmState) bucketCoverage(t int, wm WeightMode) *rrset.Coverage[rrset.NodeTime] {
	st, ix := ps.stores[t], ps.ixs[t]
	weights := make([]float64, st.Len())
	w := WeightIter(wm, t)
	for i := range weights {
		weights[i] = w
	}
	hits := make(map[rrset.NodeTime][]int)
	for v := 0; v < ps.g.NumNodes(); v++ {
		if ix.Degree(v) > 0 {
			hits[rrset.NodeTime{Node: v, Time: t}] = ix.Hits(v)
		}
	}
	return rrset.NewKeyedCoverage(st.Len(), weights, hits, rrset.LessNodeTime)
}

// splitGreedy runs an independent greedy per round with the given per-round
// budgets and concatenates the picks in round order.
func (ps *prmState) splitGreedy(wm WeightMode, budgets []int) ([]rrset.Pick[rrset.NodeTime], []float64) {
	var picks []rrset.Pick[rrset.NodeTime]
	var cum []float64
	total := 0.0
	for t := 0; t < ps.maxTime; t++ {
		if budgets[t] == 0 {
			continue
		}
		pt, ct := rrset.RunGreedy(budgets[t], ps.bucketCoverage(t, wm))
		for i := range pt {
			picks = append(picks, pt[i])
			cum = append(cum, total+ct[i])
		}
		if len(ct) > 0 {
			total += ct[len(ct)-1]
		}
	}
	return picks, cum
}

// randomGreedy draws each pick's round uniformly, falling through to the
// next round when the drawn one is exhausted.
func (ps *prmState) randomGreedy(k int, wm WeightMode) ([]rrset.Pick[rrset.NodeTime], []float64) {
	covs := make([]*rrset.Coverage[rrset.NodeTime], ps.maxTime)
	for t := 0; t < ps.maxTime; t++ {
		covs[t] = ps.bucketCoverage(t, wm)
	}
	var picks []rrset.Pick[rrset.NodeTime]
	var cum []float64
	total := 0.0
	for len(picks) < k {
		drawn := ps.rng.Intn(ps.maxTime)
		made := false
		for probe := 0; probe < ps.maxTime; probe++ {
			t := (drawn + probe) % ps.maxTime
			if pick, ok := rrset.GreedyStep(covs[t]); ok {
				total += pick.Gain
				picks = append(picks, pick)
				cum = append(cum, total)
				made = true
				break
			}
		}
		if !made {
			break // every round exhausted
		}
	}
	return picks, cum
}

// splitEven distributes k across buckets as evenly as possible, remainder
// to the earlier buckets.
func splitEven(k, buckets int) []int {
	out := make([]int, buckets)
	for t := 0; t < buckets; t++ {
		out[t] = k / buckets
		if t < k%buckets {
			out[t]++
		}
	}
	return out
}

// splitDecreasing distributes k proportionally to (buckets-t), so earlier
// rounds receive more seeds; any rounding remainder goes front-to-back.
func splitDecreasing(k, buckets int) []int {
	out := make([]int, buckets)
	weight := buckets * (buckets + 1) / 2
	assigned := 0
	for t := 0; t < buckets; t++ {
		out[t] = k * (buckets - t) / weight
		assigned += out[t]
	}
	for t := 0; assigned < k; t = (t + 1) % buckets {
		out[t]++
		assigned++
	}
	return out
}
