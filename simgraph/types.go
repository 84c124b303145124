package simgraph

import "errors"

// Sentinel errors for graph construction and parsing.
var (
	// ErrBadEdge is returned when an edge references a negative node id.
	ErrBadEdge = errors.New("simgraph: edge endpoint must be a non-negative node id")

	// ErrBadProb is returned when an activation probability is outside [0,1].
	ErrBadProb = errors.New("simgraph: activation probability must lie in [0,1]")

	// ErrParse is returned when an edge-list line cannot be parsed.
	ErrParse = errors.New("simgraph: malformed edge-list line")
)

// Graph is the narrow surface the influence engine consumes.
//
// InNeighbors(v, fn) invokes fn(u, p) for every edge u→v; OutNeighbors(v, fn)
// invokes fn(w, p) for every edge v→w. Iteration stops early when fn returns
// false. Implementations must be safe for concurrent read-only use: the
// parallel sampler iterates neighbors from several goroutines at once.
type Graph interface {
	// NumNodes reports the number of nodes; valid ids are 0..NumNodes()-1.
	NumNodes() int

	// NumEdges reports the number of directed edges.
	NumEdges() int

	// InNeighbors iterates the sources of edges ending at v.
	InNeighbors(v int, fn func(u int, p float64) bool)

	// OutNeighbors iterates the targets of edges starting at v.
	OutNeighbors(v int, fn func(w int, p float64) bool)
}
