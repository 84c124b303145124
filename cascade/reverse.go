package cascade

import (
	"math/rand"

	"github.com/takhmin/iminfl/simgraph"
)

// Reverse produces one reverse-reachable set per Sample call.
//
// Implementations carry private scratch state and a running count of edges
// examined; they are not safe for concurrent use. Clone returns an
// independent instance over the same graph with a zeroed edge counter.
type Reverse interface {
	// Sample returns the RR set rooted at root under one random
	// realization. The returned slice is freshly allocated and owned by
	// the caller; root is always its first element.
	Sample(rng *rand.Rand, root int) []int

	// EdgesVisited reports the cumulative number of edges examined by
	// Sample calls on this instance, for work-based cost accounting.
	EdgesVisited() int64

	// Clone returns an independent instance for use by another goroutine.
	Clone() Reverse
}

// ReverseIC samples reverse-reachable sets under the independent-cascade
// model by breadth-first traversal over incoming edges, flipping one coin
// per edge.
type ReverseIC struct {
	g        simgraph.Graph
	maxDepth int // 0 = unbounded

	visited []int // epoch stamps, lazily sized to NumNodes
	depth   []int
	queue   []int
	epoch   int
	edges   int64
}

// NewReverseIC returns a sampler over g with unbounded traversal depth.
func NewReverseIC(g simgraph.Graph) *ReverseIC {
	return &ReverseIC{g: g}
}

// NewReverseICDepth returns a sampler whose traversal stops d hops from the
// root; d <= 0 means unbounded. Depth-limited samples model seeds whose
// diffusion horizon is shorter than the full process.
func NewReverseICDepth(g simgraph.Graph, d int) *ReverseIC {
	if d < 0 {
		d = 0
	}
	return &ReverseIC{g: g, maxDepth: d}
}

// Clone returns an independent sampler over the same graph.
func (c *ReverseIC) Clone() Reverse {
	return &ReverseIC{g: c.g, maxDepth: c.maxDepth}
}

// EdgesVisited reports the cumulative edges examined by this instance.
func (c *ReverseIC) EdgesVisited() int64 { return c.edges }

// Sample generates one RR set rooted at root. Membership is deduplicated
// via epoch stamps, so back-to-back calls reuse the visited buffer without
// clearing it.
func (c *ReverseIC) Sample(rng *rand.Rand, root int) []int {
	n := c.g.NumNodes()
	if len(c.visited) < n {
		c.visited = make([]int, n)
		c.depth = make([]int, n)
	}
	c.epoch++
	c.queue = c.queue[:0]

	members := make([]int, 0, 8)
	c.visited[root] = c.epoch
	c.depth[root] = 0
	c.queue = append(c.queue, root)
	members = append(members, root)

	for head := 0; head < len(c.queue); head++ {
		v := c.queue[head]
		if c.maxDepth > 0 && c.depth[v] >= c.maxDepth {
			continue
		}
		c.g.InNeighbors(v, func(u int, p float64) bool {
			c.edges++
			if c.visited[u] == c.epoch {
				return true
			}
			if rng.Float64() >= p {
				return true
			}
			c.visited[u] = c.epoch
			c.depth[u] = c.depth[v] + 1
			c.queue = append(c.queue, u)
			members = append(members, u)
			return true
		})
	}
	return members
}
