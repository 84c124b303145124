package rrinfl

import (
	"math"
	"math/rand"
	"time"

	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/rrset"
	"github.com/takhmin/iminfl/simgraph"
)

// session is the shared per-run state every driver composes: graph, cascade,
// sample store, hit index, RNG. Drivers differ only in how they schedule
// sampling and selection around it.
type session struct {
	g     simgraph.Graph
	cas   cascade.Reverse
	st    rrset.Store
	ix    *rrset.Index
	rng   *rand.Rand
	opts  Options
	edges int64
	start time.Time
}

func newSession(g simgraph.Graph, opts Options) *session {
	return &session{
		g:     g,
		cas:   opts.reverse(g),
		ix:    rrset.NewIndex(g.NumNodes()),
		rng:   cascade.NewRand(opts.Seed),
		opts:  opts,
		start: time.Now(),
	}
}

// sampleTo grows the store to at least theta samples and extends the index
// incrementally. Already-sufficient stores are left untouched.
func (s *session) sampleTo(theta int) error {
	delta := theta - s.st.Len()
	if delta <= 0 {
		return nil
	}
	edges, err := rrset.AddSimulationsParallel(delta, s.opts.Workers, s.cas, s.g, &s.st, s.rng)
	if err != nil {
		return err
	}
	s.edges += edges
	s.ix.Extend(&s.st)
	return nil
}

// reset discards all samples, e.g. when a refined phase must not reuse the
// calibration phase's draws.
func (s *session) reset() {
	s.st.Reset()
	s.ix = rrset.NewIndex(s.g.NumNodes())
}

// selectSeeds runs one greedy maximum-coverage pass over the current index.
// The coverage state is rebuilt per call, so repeated calls are independent.
func (s *session) selectSeeds(k int) ([]rrset.Pick[int], []float64) {
	return rrset.RunGreedy(k, rrset.NewCoverage(s.ix))
}

// influence scales cumulative covered counts to estimated influence:
// covered/θ × n.
func (s *session) influence(cum []float64) []float64 {
	out := make([]float64, len(cum))
	scale := float64(s.g.NumNodes()) / float64(max(s.st.Len(), 1))
	for i, c := range cum {
		out[i] = c * scale
	}
	return out
}

// estimate is the spread estimate of the best-k greedy solution over the
// current samples.
func (s *session) estimate(k int) float64 {
	_, cum := s.selectSeeds(k)
	if len(cum) == 0 {
		return 0
	}
	return cum[len(cum)-1] * float64(s.g.NumNodes()) / float64(max(s.st.Len(), 1))
}

// doublingLB is the IMM-style optimum lower-bound search: round i probes
// x = n/2^i with θᵢ = λ′/x samples and accepts once the greedy estimate
// clears (1+ε′)·x. Returns the lower bound and whether a round accepted
// before the cap; on exhaustion the caller proceeds best-effort with LB=1.
func (s *session) doublingLB(k int, lambdaPrime, epsPrime float64) (float64, bool, error) {
	n := float64(s.g.NumNodes())
	rounds := int(math.Ceil(math.Log2(n))) - 1
	if rounds < 1 {
		rounds = 1
	}
	if limit := s.opts.maxDoubling(); rounds > limit {
		rounds = limit
	}
	for i := 1; i <= rounds; i++ {
		x := n / math.Pow(2, float64(i))
		theta := int(math.Ceil(lambdaPrime / x))
		if err := s.sampleTo(theta); err != nil {
			return 1, false, err
		}
		if est := s.estimate(k); est >= (1+epsPrime)*x {
			return est / (1 + epsPrime), true, nil
		}
	}
	return 1, false, nil
}

// result assembles the common Result fields from node picks.
func (s *session) result(algo string, picks []rrset.Pick[int], cum []float64) *Result {
	seeds := make([]Seed, len(picks))
	for i, p := range picks {
		seeds[i] = Seed{Node: p.Key}
	}
	return &Result{
		Algorithm:    algo,
		Seeds:        seeds,
		Influence:    s.influence(cum),
		Theta:        s.st.Len(),
		EdgesVisited: s.edges,
		Elapsed:      time.Since(s.start),
	}
}
