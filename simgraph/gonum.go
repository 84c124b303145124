package simgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph"
)

// FromGonum copies a gonum weighted directed graph into a Digraph, treating
// each edge weight as an independent-cascade activation probability clamped
// to [0,1].
//
// gonum node ids may be sparse or arbitrary; they are remapped to dense ids
// 0..n-1 in ascending order. The returned slice maps dense id back to the
// original gonum id.
func FromGonum(src graph.WeightedDirected) (*Digraph, []int64, error) {
	ids := make([]int64, 0, 16)
	nodes := src.Nodes()
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	dense := make(map[int64]int, len(ids))
	for i, id := range ids {
		dense[id] = i
	}

	var b Builder
	if src, ok := src.(interface{ Edges() graph.Edges }); ok {
		if m := src.Edges().Len(); m > 0 {
			b.Grow(m)
		}
	}
	for _, id := range ids {
		if err := b.AddNode(dense[id]); err != nil {
			return nil, nil, err
		}
		to := src.From(id)
		for to.Next() {
			tid := to.Node().ID()
			w, ok := src.Weight(id, tid)
			if !ok {
				continue
			}
			if w < 0 {
				w = 0
			} else if w > 1 {
				w = 1
			}
			if err := b.AddEdge(dense[id], dense[tid], w); err != nil {
				return nil, nil, err
			}
		}
	}
	return b.Build(), ids, nil
}
