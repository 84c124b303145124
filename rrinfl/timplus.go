package rrinfl

import (
	"math"

	"github.com/takhmin/iminfl/bounds"
	"github.com/takhmin/iminfl/simgraph"
)

// TimPlus is the two-phase TIM+ driver: a stage-1 halving search for a lower
// bound on the optimum spread with geometrically growing sample batches, an
// RThreshold0-sized refinement of that bound, then one final phase sized by
// the Lemma-3 threshold with a budget-adjusted ε′.
type TimPlus struct{}

// Build selects k seeds with approximation error eps at confidence n^(-ell).
func (TimPlus) Build(g simgraph.Graph, k int, eps, ell float64, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.NumNodes()
	if err := bounds.Validate(n, k, eps); err != nil {
		return nil, err
	}

	s := newSession(g, opts)
	log := opts.logger()
	epsPrime := bounds.EpsPrime(eps, k, ell)

	// Stage 1: round i tests the spread level x = n/2^i with a batch of
	// StepThreshold(n, 2^i) samples, so every round roughly doubles the
	// total draw and a rejection at one level can still be overturned at
	// the next.
	opt := 1.0
	est := 0.0
	accepted := false
	rounds := int(math.Ceil(math.Log2(float64(n)))) - 1
	if rounds < 1 {
		rounds = 1
	}
	if limit := opts.maxDoubling(); rounds > limit {
		rounds = limit
	}
	for i := 1; i <= rounds; i++ {
		scale := math.Pow(2, float64(i))
		theta := int(math.Ceil(bounds.StepThreshold(n, scale, ell)))
		if err := s.sampleTo(theta); err != nil {
			return nil, err
		}
		if est = s.estimate(k); est >= (1+epsPrime)*float64(n)/scale {
			opt = est / (1 + epsPrime)
			accepted = true
			break
		}
	}
	if !accepted {
		// soft exhaustion: trust the last estimate, never the level the
		// estimate failed to reach
		opt = math.Max(est/(1+epsPrime), 1)
		log.Warn("timplus: calibration exhausted, falling back to the last estimate",
			"opt", opt, "samples", s.st.Len())
	}

	// Refinement: re-estimate on an RThreshold0-sized batch and keep the
	// better lower bound.
	theta0 := int(math.Ceil(bounds.RThreshold0(epsPrime, opt, n, ell)))
	if err := s.sampleTo(theta0); err != nil {
		return nil, err
	}
	if refined := s.estimate(k) / (1 + epsPrime); refined > opt {
		opt = refined
	}

	// Final phase on fresh samples sized by Lemma 3.
	theta := int(math.Ceil(bounds.RThreshold(eps, opt, k, n, ell)))
	s.reset()
	if err := s.sampleTo(theta); err != nil {
		return nil, err
	}
	picks, cum := s.selectSeeds(k)
	return s.result("timplus", picks, cum), nil
}
