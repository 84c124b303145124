package rrinfl

import (
	"math"

	"github.com/takhmin/iminfl/bounds"
	"github.com/takhmin/iminfl/simgraph"
)

// RRInfl is the basic reverse-influence driver of Borgs et al.: one sampling
// pass of a fixed θ followed by one greedy selection.
type RRInfl struct{}

// Build selects k seeds using theta RR samples; theta <= 0 derives the
// sample count from the closed-form DefaultRounds bound with the paper's
// default slack.
func (RRInfl) Build(g simgraph.Graph, k, theta int, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := bounds.Validate(g.NumNodes(), k, borgsSlack); err != nil {
		return nil, err
	}
	if theta <= 0 {
		theta = int(math.Ceil(bounds.DefaultRounds(g.NumNodes(), g.NumEdges(), k, borgsSlack)))
	}

	s := newSession(g, opts)
	if err := s.sampleTo(theta); err != nil {
		return nil, err
	}
	picks, cum := s.selectSeeds(k)
	return s.result("rrinfl", picks, cum), nil
}

// BuildInError selects k seeds with a tolerance-driven sample count: θ is
// doubled and greedy re-run until two consecutive spread estimates agree
// within a relative eps, or the doubling cap is reached (soft exhaustion,
// best estimate returned).
func (RRInfl) BuildInError(g simgraph.Graph, k int, eps float64, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := bounds.Validate(g.NumNodes(), k, eps); err != nil {
		return nil, err
	}

	s := newSession(g, opts)
	log := opts.logger()

	theta := 1 << 10
	prev := math.NaN()
	converged := false
	for round := 0; round < opts.maxDoubling(); round++ {
		if err := s.sampleTo(theta); err != nil {
			return nil, err
		}
		est := s.estimate(k)
		if !math.IsNaN(prev) && est > 0 && math.Abs(est-prev)/est <= eps {
			converged = true
			break
		}
		prev = est
		theta *= 2
	}
	if !converged {
		log.Warn("rrinfl: doubling cap reached before convergence, returning best effort",
			"theta", s.st.Len(), "eps", eps)
	}

	picks, cum := s.selectSeeds(k)
	return s.result("rrinfl", picks, cum), nil
}
