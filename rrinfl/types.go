package rrinfl

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/simgraph"
)

// ErrNilGraph is returned when a driver receives a nil graph.
var ErrNilGraph = errors.New("rrinfl: graph is nil")

// borgsSlack is the default slack parameter of the basic RRInfl bound,
// also used as the stand-in ε when a driver entry point takes none.
const borgsSlack = 0.2

// defaultMaxDoubling caps every doubling/refinement loop so Build always
// terminates even when a theoretical threshold is never crossed.
const defaultMaxDoubling = 32

// defaultSimRounds is the forward Monte-Carlo repetition count for the
// auxiliary estimators used by the Shapley and continuous-budget variants.
const defaultSimRounds = 10000

// Seed is one selected seed node; Time is the placement round for
// time-indexed algorithms and 0 otherwise.
type Seed struct {
	Node int
	Time int
}

// Result is the output of one driver run.
type Result struct {
	// Algorithm is the short name keying the output file pair.
	Algorithm string

	// Seeds in selection order.
	Seeds []Seed

	// Influence holds the cumulative estimated influence after each seed,
	// index-aligned with Seeds. Non-decreasing.
	Influence []float64

	// Allocation is the per-node continuous budget (CIMM only).
	Allocation []float64

	// SamplesPerRound is the RR sample count per time bucket (PRMIMM only).
	SamplesPerRound []int

	// Theta is the number of RR samples backing the final selection.
	Theta int

	// EdgesVisited counts edges examined across all sampling phases.
	EdgesVisited int64

	// Elapsed is the wall-clock duration of the Build call.
	Elapsed time.Duration
}

// Options configures a driver run. The zero value is usable; DefaultOptions
// fills in the documented defaults.
type Options struct {
	// Seed feeds the deterministic RNG; 0 maps to a fixed default stream.
	Seed int64

	// Workers enables parallel RR sampling when > 1; 0 or 1 is sequential.
	Workers int

	// Logger receives progress and soft-exhaustion reports; nil discards.
	Logger *slog.Logger

	// MaxDoubling caps doubling/refinement rounds; 0 means the default.
	MaxDoubling int

	// SimRounds is the repetition count for forward Monte-Carlo
	// estimation in the Shapley/CIMM variants; 0 means the default.
	SimRounds int

	// MaxDepth bounds the reverse-sampling horizon in hops; 0 means the
	// full diffusion process. A shorter horizon models campaigns whose
	// effect window closes before diffusion completes.
	MaxDepth int
}

// DefaultOptions returns the production defaults: sequential sampling,
// discarded logs, capped doubling.
func DefaultOptions() Options {
	return Options{
		MaxDoubling: defaultMaxDoubling,
		SimRounds:   defaultSimRounds,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) maxDoubling() int {
	if o.MaxDoubling > 0 {
		return o.MaxDoubling
	}
	return defaultMaxDoubling
}

func (o Options) simRounds() int {
	if o.SimRounds > 0 {
		return o.SimRounds
	}
	return defaultSimRounds
}

// reverse builds the configured reverse sampler over g.
func (o Options) reverse(g simgraph.Graph) cascade.Reverse {
	if o.MaxDepth > 0 {
		return cascade.NewReverseICDepth(g, o.MaxDepth)
	}
	return cascade.NewReverseIC(g)
}
