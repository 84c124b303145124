// Package bounds computes the statistically required number of RR samples
// (θ) for each influence-maximization algorithm family, so that greedy
// selection achieves a (1−1/e−ε)-approximation with probability ≥ 1−n^(−ℓ).
//
// Three escalating formulations are provided:
//
//   - DefaultRounds — the closed-form bound of Borgs et al. (SODA 2014)
//     used by the basic RRInfl driver.
//
//   - TimPlus family — StepThreshold, RThreshold0, RThreshold and EpsPrime
//     from Tang, Xiao & Shi (SIGMOD 2014): a calibration stage lower-bounds
//     the optimum spread, then Lemma 3 converts that bound plus a
//     budget-adjusted ε′ into the final θ.
//
//   - IMM family — LambdaPrime (Eq. 9) and LambdaStar (Eq. 6) of Tang et
//     al. (SIGMOD 2015), plus the PRM time-indexed extensions. Each accepts
//     a Mode: ModeOriginal is the published bound; ModeCorrected applies
//     the confidence adjustment from the arXiv:1808.09363 erratum
//     (ℓ ← ℓ + ln 2 / ln n). Both stay selectable; they are never merged.
//
// LogNChooseK delegates to gonum's stat/combin log-gamma formulation, so
// log C(n,k) stays finite for n in the millions where factorials overflow.
//
// All functions clamp logarithm arguments away from zero instead of
// propagating NaN: the algorithms are approximate by design, and a floored
// term only loosens the bound. Degenerate shape parameters (k ≤ 0, k ≥ n,
// ε outside (0,1)) are rejected with ErrInvalidParameter by Validate, which
// every driver calls before sampling.
package bounds
