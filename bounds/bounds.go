package bounds

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// ErrInvalidParameter is returned for degenerate shape parameters.
// Drivers surface it before any sampling begins.
var ErrInvalidParameter = errors.New("bounds: invalid parameter")

// Mode selects between the published IMM/PRM-IMM bounds and the corrected
// bounds from the arXiv:1808.09363 erratum.
type Mode int

const (
	// ModeOriginal uses the bounds exactly as published.
	ModeOriginal Mode = iota

	// ModeCorrected applies the erratum's confidence adjustment
	// ℓ ← ℓ + ln 2 / ln n, tightening the union bound across phases.
	ModeCorrected
)

// logFloor keeps logarithm arguments away from zero. A floored term only
// loosens a sample-size bound, which is always safe.
const logFloor = 1e-12

// oneMinusInvE = 1 - 1/e, the greedy approximation factor.
var oneMinusInvE = 1 - 1/math.E

func safeLog(x float64) float64 {
	if x < logFloor {
		x = logFloor
	}
	return math.Log(x)
}

// Validate rejects degenerate (n, k, eps) combinations: the caller should
// fall back to exhaustive selection (k ≥ n) or refuse the run entirely.
func Validate(n, k int, eps float64) error {
	switch {
	case n <= 0:
		return fmt.Errorf("%w: n=%d", ErrInvalidParameter, n)
	case k <= 0:
		return fmt.Errorf("%w: k=%d", ErrInvalidParameter, k)
	case k >= n:
		return fmt.Errorf("%w: k=%d with only n=%d nodes", ErrInvalidParameter, k, n)
	case eps <= 0 || eps >= 1:
		return fmt.Errorf("%w: eps=%g outside (0,1)", ErrInvalidParameter, eps)
	}
	return nil
}

// LogNChooseK returns log C(n,k) via the log-gamma formulation, stable for
// n in the millions. Out-of-range k yields 0 (C(n,0)=C(n,n)=1).
func LogNChooseK(n, k int) float64 {
	if k <= 0 || k >= n {
		return 0
	}
	return combin.LogGeneralizedBinomial(float64(n), float64(k))
}

// DefaultRounds is the closed-form sample count of Borgs et al. for the
// basic RRInfl driver: Θ((m+n)·k·log n / ε³). eps ≤ 0 falls back to the
// paper's slack of 0.2.
func DefaultRounds(n, m, k int, eps float64) float64 {
	if eps <= 0 {
		eps = 0.2
	}
	return 144 * float64(n+m) * float64(k) * safeLog(float64(n)) / (eps * eps * eps)
}

// EpsPrime is the budget-adjusted error for TimPlus's calibration stage
// (last equation of Section 4.1): ε′ = 5·(ℓ·ε²/(k+ℓ))^(1/3).
func EpsPrime(eps float64, k int, ell float64) float64 {
	return 5 * math.Cbrt(ell*eps*eps/(float64(k)+ell))
}

// StepThreshold is the sample batch for one round of TimPlus's stage-1
// lower-bound search, with lb = 2^i at round i: (6ℓ·ln n + 6·ln log₂n)·lb.
// Doubling lb doubles the batch, so later rounds always draw new samples.
func StepThreshold(n int, lb, ell float64) float64 {
	return (6*ell*safeLog(float64(n)) + 6*safeLog(math.Log2(float64(n)))) * lb
}

// RThreshold0 is the calibration-stage sample count given a current
// optimum lower bound opt: (2+ε)·ℓ·n·ln n / (ε²·opt).
func RThreshold0(eps, opt float64, n int, ell float64) float64 {
	if opt < 1 {
		opt = 1
	}
	return (2 + eps) * ell * float64(n) * safeLog(float64(n)) / (eps * eps * opt)
}

// RThreshold is TimPlus's final sample count (Lemma 3):
// (8+2ε)·n·(ℓ·ln n + ln C(n,k) + ln 2) / (ε²·opt).
func RThreshold(eps, opt float64, k, n int, ell float64) float64 {
	if opt < 1 {
		opt = 1
	}
	logTerm := ell*safeLog(float64(n)) + LogNChooseK(n, k) + math.Ln2
	return (8 + 2*eps) * float64(n) * logTerm / (eps * eps * opt)
}

// adjustEll applies the erratum's confidence correction when requested.
func adjustEll(ell float64, n int, mode Mode) float64 {
	if mode == ModeCorrected {
		ell += math.Ln2 / safeLog(float64(n))
	}
	return ell
}

// LambdaPrime is IMM's Equation (9), the numerator of the per-round sample
// count during the OPT lower-bound doubling search.
func LambdaPrime(epsPrime float64, k int, ell float64, n int, mode Mode) float64 {
	ell = adjustEll(ell, n, mode)
	logTerm := LogNChooseK(n, k) + ell*safeLog(float64(n)) + safeLog(math.Log2(float64(n)))
	return (2 + 2*epsPrime/3) * logTerm * float64(n) / (epsPrime * epsPrime)
}

// LambdaStar is IMM's Equation (6), the numerator of the final sample count
// once the best OPT lower bound is fixed.
func LambdaStar(eps float64, k int, ell float64, n int, mode Mode) float64 {
	ell = adjustEll(ell, n, mode)
	logN := safeLog(float64(n))
	alpha := math.Sqrt(ell*logN + math.Ln2)
	beta := math.Sqrt(oneMinusInvE * (LogNChooseK(n, k) + ell*logN + math.Ln2))
	sum := oneMinusInvE*alpha + beta
	return 2 * float64(n) * sum * sum / (eps * eps)
}

// PRMLambdaPrime extends LambdaPrime to the time-indexed key space of
// PRM-IMM: candidates are (node, round) pairs over rounds 0..maxTime-1, so
// the binomial term counts k-subsets of n·maxTime positions.
func PRMLambdaPrime(epsPrime float64, k int, ell float64, n, maxTime int, mode Mode) float64 {
	if maxTime < 1 {
		maxTime = 1
	}
	ell = adjustEll(ell, n, mode)
	logTerm := LogNChooseK(n*maxTime, k) + ell*safeLog(float64(n)) + safeLog(math.Log2(float64(n)))
	return (2 + 2*epsPrime/3) * logTerm * float64(n) / (epsPrime * epsPrime)
}

// PRMLambdaStar extends LambdaStar to the time-indexed key space.
func PRMLambdaStar(eps float64, k int, ell float64, n, maxTime int, mode Mode) float64 {
	if maxTime < 1 {
		maxTime = 1
	}
	ell = adjustEll(ell, n, mode)
	logN := safeLog(float64(n))
	alpha := math.Sqrt(ell*logN + math.Ln2)
	beta := math.Sqrt(oneMinusInvE * (LogNChooseK(n*maxTime, k) + ell*logN + math.Ln2))
	sum := oneMinusInvE*alpha + beta
	return 2 * float64(n) * sum * sum / (eps * eps)
}

// ShapleyRounds is the sample count for the ASV-RR Shapley pass, from the
// Chernoff bound on per-node credit accumulators:
// (2+2ε/3)·n·(ℓ·ln n + ln 2) / ε².
func ShapleyRounds(n int, eps, ell float64) float64 {
	return (2 + 2*eps/3) * float64(n) * (ell*safeLog(float64(n)) + math.Ln2) / (eps * eps)
}
