// Package simgraph provides the directed, probability-weighted graph
// consumed by the influence-maximization engine.
//
// The engine itself never depends on a concrete representation: every
// algorithm accepts the Graph interface, which exposes node/edge counts
// and neighbor iteration in both orientations. Reverse-reachable sampling
// walks incoming edges; forward Monte-Carlo simulation walks outgoing
// edges. Each neighbor carries an activation probability in [0,1] under
// the independent-cascade model.
//
// Two concrete sources are provided:
//
//   - Digraph — a compact CSR (offsets + targets + probabilities) store
//     for both edge orientations, assembled through Builder. Suitable for
//     graphs with millions of edges; neighbor iteration is a contiguous
//     slice scan with no per-edge allocation.
//
//   - FromGonum — an adapter over gonum's graph.WeightedDirected, treating
//     edge weights as activation probabilities (clamped to [0,1]). Use it
//     to run the engine on graphs produced by the gonum ecosystem without
//     copying.
//
// ReadEdgeList parses the plain whitespace-delimited "u v p" format
// commonly used for cascade datasets ('#'-prefixed lines are comments).
//
// Errors:
//   - ErrBadEdge  — negative node id on AddEdge.
//   - ErrBadProb  — activation probability outside [0,1].
//   - ErrParse    — malformed edge-list line.
package simgraph
