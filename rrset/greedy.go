package rrset

import (
	"container/heap"
	"sort"
)

// NodeTime is the key of a time-indexed selection: node placed at round Time.
type NodeTime struct {
	Node int
	Time int
}

// LessNode is the tie-break order for plain node keys.
func LessNode(a, b int) bool { return a < b }

// LessNodeTime orders keys by node, then by round.
func LessNodeTime(a, b NodeTime) bool {
	if a.Node != b.Node {
		return a.Node < b.Node
	}
	return a.Time < b.Time
}

// Coverage is the destructive working state of one greedy run over keys of
// type K. Sample weights default to 1; time-indexed drivers supply decayed
// weights. A Coverage is consumed by exactly one RunGreedy call; rebuild the
// Index and construct a fresh Coverage for an independent run.
type Coverage[K comparable] struct {
	samples int
	weights []float64 // nil ⇒ every sample weighs 1
	covered []bool
	hits    map[K][]int
	less    func(a, b K) bool
	keys    []K // lazily sorted key order for deterministic iteration
}

// NewCoverage builds the plain node-keyed Coverage from a hit index.
// The hit lists are shared with the index, not copied; the index must not
// be extended while this Coverage is live.
func NewCoverage(ix *Index) *Coverage[int] {
	hits := make(map[int][]int, ix.NumNodes())
	for v := 0; v < ix.NumNodes(); v++ {
		if ix.Degree(v) > 0 {
			hits[v] = ix.Hits(v)
		}
	}
	return NewKeyedCoverage(ix.Samples(), nil, hits, LessNode)
}

// NewKeyedCoverage builds a Coverage over arbitrary keys. weights may be nil
// (unit weights) or hold one weight per sample index. less defines the
// deterministic tie-break order.
func NewKeyedCoverage[K comparable](samples int, weights []float64, hits map[K][]int, less func(a, b K) bool) *Coverage[K] {
	return &Coverage[K]{
		samples: samples,
		weights: weights,
		covered: make([]bool, samples),
		hits:    hits,
		less:    less,
	}
}

// Samples reports the number of samples under coverage.
func (c *Coverage[K]) Samples() int { return c.samples }

// Marginal recomputes the true marginal gain of key k: the total weight of
// its not-yet-covered samples.
func (c *Coverage[K]) Marginal(k K) float64 {
	var gain float64
	for _, i := range c.hits[k] {
		if !c.covered[i] {
			gain += c.weight(i)
		}
	}
	return gain
}

// Cover marks all samples hit by k as covered and returns the weight newly
// covered by this call.
func (c *Coverage[K]) Cover(k K) float64 {
	var gain float64
	for _, i := range c.hits[k] {
		if !c.covered[i] {
			c.covered[i] = true
			gain += c.weight(i)
		}
	}
	return gain
}

func (c *Coverage[K]) weight(i int) float64 {
	if c.weights == nil {
		return 1
	}
	return c.weights[i]
}

// sortedKeys materializes the key set in tie-break order once, so that map
// iteration order never leaks into selection results.
func (c *Coverage[K]) sortedKeys() []K {
	if c.keys == nil {
		c.keys = make([]K, 0, len(c.hits))
		for k := range c.hits {
			c.keys = append(c.keys, k)
		}
		sort.Slice(c.keys, func(i, j int) bool { return c.less(c.keys[i], c.keys[j]) })
	}
	return c.keys
}

// Pick is one greedy selection with its marginal covered weight.
type Pick[K comparable] struct {
	Key  K
	Gain float64
}

// gainEntry pairs a key with its cached (possibly stale) marginal gain.
type gainEntry[K comparable] struct {
	key  K
	gain float64
}

// gainHeap is a max-heap on cached gain; equal gains order by the coverage
// tie-break so pops are deterministic.
type gainHeap[K comparable] struct {
	entries []gainEntry[K]
	less    func(a, b K) bool
}

func (h *gainHeap[K]) Len() int { return len(h.entries) }
func (h *gainHeap[K]) Less(i, j int) bool {
	if h.entries[i].gain != h.entries[j].gain {
		return h.entries[i].gain > h.entries[j].gain
	}
	return h.less(h.entries[i].key, h.entries[j].key)
}
func (h *gainHeap[K]) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *gainHeap[K]) Push(x any)    { h.entries = append(h.entries, x.(gainEntry[K])) }
func (h *gainHeap[K]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

// RunGreedy selects up to budget keys by lazy greedy maximum coverage,
// destructively consuming cov. It stops early once no key covers positive
// weight. Returns the picks in selection order and the cumulative covered
// weight after each pick (non-decreasing by construction).
//
// Lazy evaluation: cached gains only ever shrink as coverage grows, so a
// popped entry whose recomputed gain still beats the next cached gain is
// safe to accept without touching any other key.
func RunGreedy[K comparable](budget int, cov *Coverage[K]) ([]Pick[K], []float64) {
	h := &gainHeap[K]{
		entries: make([]gainEntry[K], 0, len(cov.hits)),
		less:    cov.less,
	}
	for _, k := range cov.sortedKeys() {
		if g := cov.Marginal(k); g > 0 {
			h.entries = append(h.entries, gainEntry[K]{key: k, gain: g})
		}
	}
	heap.Init(h)

	picks := make([]Pick[K], 0, budget)
	cumulative := make([]float64, 0, budget)
	total := 0.0

	for len(picks) < budget && h.Len() > 0 {
		top := heap.Pop(h).(gainEntry[K])
		fresh := cov.Marginal(top.key)
		if fresh <= 0 {
			continue
		}
		if h.Len() > 0 {
			next := h.entries[0]
			stale := fresh < next.gain ||
				(fresh == next.gain && cov.less(next.key, top.key))
			if stale {
				heap.Push(h, gainEntry[K]{key: top.key, gain: fresh})
				continue
			}
		}
		total += cov.Cover(top.key)
		picks = append(picks, Pick[K]{Key: top.key, Gain: fresh})
		cumulative = append(cumulative, total)
	}
	return picks, cumulative
}

// GreedyStep makes a single greedy selection by exhaustive scan: the key
// with the largest current marginal gain (ties toward the smaller key) is
// covered and returned. ok is false when no key covers positive weight.
// Used by selection policies that interleave picks across several Coverage
// instances, where the heap bookkeeping of RunGreedy does not apply.
func GreedyStep[K comparable](cov *Coverage[K]) (Pick[K], bool) {
	var best K
	bestGain := 0.0
	found := false
	for _, k := range cov.sortedKeys() {
		// strict > keeps the earliest (smallest) key on ties
		if g := cov.Marginal(k); g > bestGain {
			best, bestGain = k, g
			found = true
		}
	}
	if !found {
		return Pick[K]{}, false
	}
	cov.Cover(best)
	return Pick[K]{Key: best, Gain: bestGain}, true
}
