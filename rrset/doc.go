// Package rrset holds the reverse-reachable sampling core: the sample
// store, the inverted hit index, the sampling strategies, and the greedy
// maximum-coverage selector shared by every influence-maximization driver.
//
// # Data structures
//
//   - Store — the append-only sequence of RR samples plus their root nodes,
//     index-aligned (len(samples) == len(roots) always). Samples are owned
//     by the Store and referenced by index everywhere else. A Store is only
//     ever discarded wholesale (Reset), never edited in place.
//
//   - Index — the inverted index from node id to the sample indices that
//     contain it, with a per-node degree. Rebuild reconstructs it from
//     scratch; Extend consumes only samples appended since the last
//     Rebuild/Extend, so incremental sampling phases stay O(new work).
//     Rebuild is idempotent: two consecutive calls yield identical state.
//
//   - Coverage — the destructive working state of one greedy run: a covered
//     mark per sample and a cached marginal gain per key. Generic over the
//     key type so the plain node selector and the time-indexed
//     (node, time) selector share one implementation. A Coverage is
//     consumed by exactly one RunGreedy call.
//
// # Sampling
//
// AddSimulations draws roots uniformly at random and appends one RR sample
// per draw. AddSimulationsParallel pre-sizes the Store and fans the work out
// across errgroup workers, each holding a cloned cascade instance and a
// derived RNG stream; workers write disjoint index ranges, so no two
// goroutines touch the same slot and no lock is needed on the hot path. The
// Index is never updated concurrently; callers extend or rebuild it after
// the fan-in.
//
// # Selection
//
// RunGreedy implements lazy greedy maximum coverage: a max-heap keyed by
// cached marginal gain, with stale entries recomputed on pop and re-pushed.
// Ties break toward the smaller key so runs are reproducible. The returned
// cumulative gain sequence is non-decreasing; drivers scale it by n/θ to
// obtain estimated influence.
package rrset
