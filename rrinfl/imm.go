package rrinfl

import (
	"math"

	"github.com/takhmin/iminfl/bounds"
	"github.com/takhmin/iminfl/simgraph"
)

// IMM is the martingale-based driver of Tang, Tang & Xiao: a log₂(n)-round
// doubling search for the optimum lower bound gated by λ′, then one final
// pass sized by λ*.
type IMM struct{}

// Build selects k seeds with approximation error eps at confidence n^(-ell).
//
// mode picks the bound formulation at every decision point: ModeOriginal
// reproduces the published algorithm, including the reuse of lower-bound
// phase samples in the final pass; ModeCorrected applies the erratum's
// confidence adjustment and regenerates the final samples from scratch, so
// the two phases' draws stay independent.
func (IMM) Build(g simgraph.Graph, k int, eps, ell float64, mode bounds.Mode, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NumNodes()
	if err := bounds.Validate(n, k, eps); err != nil {
		return nil, err
	}

	s := newSession(g, opts)
	log := opts.logger()

	epsPrime := math.Sqrt2 * eps
	lambdaPrime := bounds.LambdaPrime(epsPrime, k, ell, n, mode)
	lb, found, err := s.doublingLB(k, lambdaPrime, epsPrime)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Warn("imm: lower-bound search exhausted, proceeding with lb=1",
			"samples", s.st.Len())
	}

	theta := int(math.Ceil(bounds.LambdaStar(eps, k, ell, n, mode) / lb))
	if mode == bounds.ModeCorrected {
		s.reset()
	}
	if err := s.sampleTo(theta); err != nil {
		return nil, err
	}
	picks, cum := s.selectSeeds(k)
	return s.result("imm", picks, cum), nil
}
