// Package rrinfl orchestrates the influence-maximization algorithm drivers
// built on reverse-reachable (RR) set sampling:
//
//   - RRInfl   — Borgs et al. (SODA 2014): fixed θ, single pass, plus a
//     tolerance-driven θ-doubling variant (BuildInError).
//   - TimPlus  — Tang, Xiao & Shi (SIGMOD 2014): one calibration phase that
//     lower-bounds the optimum spread, then one refined final phase.
//   - IMM      — Tang, Tang & Xiao (SIGMOD 2015): log₂(n)-round doubling
//     search gated by λ′, final pass sized by λ*. The bound Mode selects
//     the published or erratum-corrected formulation.
//   - CIMM     — continuous-budget IMM: coordinate-ascent allocation of a
//     divisible budget under a concave activation function.
//   - ShapleyInfl / SNIInfl — ASV-RR: a single credit-attribution sampling
//     pass replacing greedy selection; SNIInfl reports single-node
//     influence from the same pass.
//   - PRMIMM   — time-indexed IMM: per-round sample families, decayed
//     sample weights, and several seed-placement policies under one
//     FindTopK dispatcher.
//
// Every driver follows the same state machine: validate → estimate θ →
// sample → select → (refine | done) → result. Validation failures surface
// bounds.ErrInvalidParameter before any sampling; numerical degeneracy is
// clamped inside package bounds; doubling searches are capped and report
// exhaustion through the structured logger as a soft condition, never as an
// error. With Workers ≤ 1 and a fixed Options.Seed, every driver is fully
// deterministic.
//
// The drivers are thin: sampling, indexing, and selection live in package
// rrset, the θ formulas in package bounds, the diffusion model in package
// cascade. Results carry the ordered seed list with cumulative estimated
// influence and can be written as plain delimited text via WriteTo or
// WriteFiles (which also emits the wall-clock timing file, one pair of
// output names per algorithm).
package rrinfl
