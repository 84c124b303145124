// Package iminfl selects influential seed nodes of directed probabilistic
// graphs under the independent-cascade model, using reverse-reachable (RR)
// set sampling.
//
// 🚀 What is iminfl?
//
//	A deterministic, composable influence-maximization toolkit:
//		• Graph substrate: compact CSR digraphs with per-edge probabilities
//		• Sampling: reverse independent-cascade simulation, parallel fan-out
//		• Selection: generic lazy-greedy maximum coverage with exact tie-breaks
//		• Sample sizing: Borgs, TIM+, IMM and martingale PRM bounds
//		• Drivers: RRInfl, TIM+, IMM, continuous-budget CIMM, time-indexed
//		  PRM-IMM, and ASV-RR Shapley / single-node attribution
//
// Everything is organized under five subpackages plus a CLI:
//
//	simgraph/   — immutable CSR digraph, edge-list reader, gonum adapter
//	cascade/    — reverse and forward independent-cascade simulation, RNG policy
//	rrset/      — sample store, hit index, samplers, generic greedy coverage
//	bounds/     — sample-complexity thresholds with original/corrected modes
//	rrinfl/     — algorithm drivers composing the above, plus output writers
//	cmd/iminfl/ — command-line front end, one subcommand per driver
//
// Every run is reproducible: a fixed Options.Seed and worker count replay the
// exact sample sequence, seed set, and influence trace.
//
//	go get github.com/takhmin/iminfl
package iminfl
