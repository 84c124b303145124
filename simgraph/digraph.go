package simgraph

import (
	"fmt"
	"sort"
)

// edge is the builder's staging record before CSR packing.
type edge struct {
	from, to int
	prob     float64
}

// Builder accumulates directed edges and packs them into a Digraph.
// Zero value is ready to use.
type Builder struct {
	edges    []edge
	maxNode  int
	hasNodes bool
}

// Grow hints the expected edge count to reduce reallocation.
func (b *Builder) Grow(edges int) {
	if cap(b.edges)-len(b.edges) < edges {
		grown := make([]edge, len(b.edges), len(b.edges)+edges)
		copy(grown, b.edges)
		b.edges = grown
	}
}

// AddNode ensures node v exists even if it has no incident edges.
// Returns ErrBadEdge for a negative id.
func (b *Builder) AddNode(v int) error {
	if v < 0 {
		return fmt.Errorf("%w: node %d", ErrBadEdge, v)
	}
	b.touch(v)
	return nil
}

// AddEdge records the directed edge u→v with activation probability p.
// Returns ErrBadEdge for negative ids and ErrBadProb for p outside [0,1].
func (b *Builder) AddEdge(u, v int, p float64) error {
	if u < 0 || v < 0 {
		return fmt.Errorf("%w: %d→%d", ErrBadEdge, u, v)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %g on edge %d→%d", ErrBadProb, p, u, v)
	}
	b.touch(u)
	b.touch(v)
	b.edges = append(b.edges, edge{from: u, to: v, prob: p})
	return nil
}

func (b *Builder) touch(v int) {
	if !b.hasNodes || v > b.maxNode {
		b.maxNode = v
		b.hasNodes = true
	}
}

// Build packs the accumulated edges into an immutable Digraph.
// The Builder may be reused afterwards; Build does not consume it.
func (b *Builder) Build() *Digraph {
	n := 0
	if b.hasNodes {
		n = b.maxNode + 1
	}
	g := &Digraph{
		n: n,
		m: len(b.edges),
	}
	g.out = packCSR(n, b.edges, func(e edge) (int, int) { return e.from, e.to })
	g.in = packCSR(n, b.edges, func(e edge) (int, int) { return e.to, e.from })
	return g
}

// csr is one orientation of the adjacency in compressed sparse row form.
type csr struct {
	offsets []int
	targets []int
	probs   []float64
}

// packCSR builds one CSR orientation. key extracts (bucket node, neighbor)
// from each staged edge. Neighbors within a bucket are sorted by id so that
// iteration order, and therefore every downstream simulation, is stable.
func packCSR(n int, edges []edge, key func(edge) (int, int)) csr {
	c := csr{
		offsets: make([]int, n+1),
		targets: make([]int, len(edges)),
		probs:   make([]float64, len(edges)),
	}
	for _, e := range edges {
		from, _ := key(e)
		c.offsets[from+1]++
	}
	for i := 1; i <= n; i++ {
		c.offsets[i] += c.offsets[i-1]
	}
	cursor := make([]int, n)
	for _, e := range edges {
		from, to := key(e)
		at := c.offsets[from] + cursor[from]
		c.targets[at] = to
		c.probs[at] = e.prob
		cursor[from]++
	}
	for v := 0; v < n; v++ {
		lo, hi := c.offsets[v], c.offsets[v+1]
		sort.Sort(&csrBucket{c: &c, lo: lo, hi: hi})
	}
	return c
}

// csrBucket sorts one node's neighbor run by target id, keeping probs aligned.
type csrBucket struct {
	c      *csr
	lo, hi int
}

func (s *csrBucket) Len() int { return s.hi - s.lo }
func (s *csrBucket) Less(i, j int) bool {
	return s.c.targets[s.lo+i] < s.c.targets[s.lo+j]
}
func (s *csrBucket) Swap(i, j int) {
	a, b := s.lo+i, s.lo+j
	s.c.targets[a], s.c.targets[b] = s.c.targets[b], s.c.targets[a]
	s.c.probs[a], s.c.probs[b] = s.c.probs[b], s.c.probs[a]
}

// Digraph is an immutable CSR-backed directed graph with per-edge
// activation probabilities, stored in both orientations. Safe for
// concurrent readers.
type Digraph struct {
	n, m    int
	in, out csr
}

// NumNodes reports the number of nodes.
func (g *Digraph) NumNodes() int { return g.n }

// NumEdges reports the number of directed edges.
func (g *Digraph) NumEdges() int { return g.m }

// InNeighbors iterates sources u of edges u→v in ascending id order.
func (g *Digraph) InNeighbors(v int, fn func(u int, p float64) bool) {
	g.in.iterate(v, fn)
}

// OutNeighbors iterates targets w of edges v→w in ascending id order.
func (g *Digraph) OutNeighbors(v int, fn func(w int, p float64) bool) {
	g.out.iterate(v, fn)
}

func (c *csr) iterate(v int, fn func(int, float64) bool) {
	if v < 0 || v+1 >= len(c.offsets) {
		return
	}
	for i := c.offsets[v]; i < c.offsets[v+1]; i++ {
		if !fn(c.targets[i], c.probs[i]) {
			return
		}
	}
}
