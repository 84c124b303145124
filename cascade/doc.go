// Package cascade implements the stochastic diffusion collaborators used by
// the influence-maximization engine: reverse-reachable sampling and forward
// Monte-Carlo spread estimation, both under the independent-cascade (IC)
// model.
//
// # Reverse sampling
//
// A reverse-reachable (RR) sample rooted at r is the set of nodes that would
// have activated r under one random realization of the diffusion process.
// Under IC semantics an edge u→v is "live" with its activation probability p,
// independently of all other edges; the RR set is everything that reaches r
// through live edges, found by a breadth-first walk over *incoming* edges
// with one coin flip per edge. The root is always a member of its own sample.
//
// ReverseIC implements the Reverse interface. Each instance owns scratch
// buffers (an epoch-stamped visited array and a queue), so it must not be
// shared across goroutines; parallel samplers call Clone to obtain
// independent instances. All randomness flows through the caller-supplied
// *rand.Rand, never a hidden time-based source, so a fixed seed reproduces
// the exact sample sequence.
//
// # Forward estimation
//
// Spread runs the forward IC process from a seed set for a number of
// independent rounds and returns the mean activated count. It is used only
// for auxiliary validation (Shapley and continuous-budget variants); the
// core selection loop never needs it.
//
// # Determinism
//
// NewRand and DeriveRand centralize random-stream construction: seed 0 maps
// to a fixed default, and DeriveRand produces decorrelated per-worker
// streams via a SplitMix64-style mix, so parallel runs are reproducible
// given a worker count.
package cascade
