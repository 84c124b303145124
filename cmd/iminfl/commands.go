package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/takhmin/iminfl/bounds"
	"github.com/takhmin/iminfl/rrinfl"
	"github.com/takhmin/iminfl/simgraph"
)

var (
	graphPath string
	outputDir string
	seedCount int
	eps       float64
	ell       float64
	rngSeed   int64
	workers   int
	maxDepth  int
	verbose   bool

	// per-command knobs
	theta     int
	corrected bool
	budget    float64
	stepSize  float64
	delta     float64
	topk      int
	maxTime   int
	policy    string
	weights   string

	rootCmd = &cobra.Command{
		Use:   "iminfl",
		Short: "Influence maximization via reverse-reachable sampling",
		Long: `iminfl selects influential seed nodes of a directed probabilistic
graph under the independent-cascade model. Every subcommand reads a
whitespace-delimited edge list ("u v p" per line) and writes the selected
seeds plus a timing log into the output directory.`,
		SilenceUsage: true,
	}

	rrCmd = &cobra.Command{
		Use:   "rr",
		Short: "Basic reverse-influence sampling with a fixed sample count",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}
			res, err := rrinfl.RRInfl{}.Build(g, seedCount, theta, options())
			if err != nil {
				return err
			}
			return report(res)
		},
	}

	timCmd = &cobra.Command{
		Use:   "tim",
		Short: "Two-phase TIM+ with calibration and a refined final pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}
			res, err := rrinfl.TimPlus{}.Build(g, seedCount, eps, ell, options())
			if err != nil {
				return err
			}
			return report(res)
		},
	}

	immCmd = &cobra.Command{
		Use:   "imm",
		Short: "Martingale-based IMM with a doubling lower-bound search",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}
			res, err := rrinfl.IMM{}.Build(g, seedCount, eps, ell, boundsMode(), options())
			if err != nil {
				return err
			}
			return report(res)
		},
	}

	cimmCmd = &cobra.Command{
		Use:   "cimm",
		Short: "Continuous-budget IMM spreading a divisible budget over nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}
			res, err := rrinfl.CIMM{}.Build(g, budget, stepSize, eps, ell, delta, options())
			if err != nil {
				return err
			}
			return report(res)
		},
	}

	shapleyCmd = &cobra.Command{
		Use:   "shapley",
		Short: "ASV-RR Shapley attribution of influence credit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttribution(false)
		},
	}

	sniCmd = &cobra.Command{
		Use:   "sni",
		Short: "Single-node influence estimates from the attribution pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttribution(true)
		},
	}

	prmCmd = &cobra.Command{
		Use:   "prm",
		Short: "Time-indexed IMM placing seeds across decaying rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph()
			if err != nil {
				return err
			}
			pol, err := parsePolicy(policy)
			if err != nil {
				return err
			}
			wm, err := parseWeights(weights)
			if err != nil {
				return err
			}
			d := rrinfl.PRMIMM{Policy: pol, WeightMode: wm}
			res, err := d.Build(g, seedCount, maxTime, eps, ell, boundsMode(), options())
			if err != nil {
				return err
			}
			return report(res)
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&graphPath, "graph", "g", "", "edge list file, one \"u v p\" triple per line")
	pf.StringVarP(&outputDir, "output", "o", ".", "directory for seed and timing files")
	pf.IntVar(&seedCount, "k", 50, "number of seeds to select")
	pf.Float64Var(&eps, "eps", 0.1, "approximation error tolerance")
	pf.Float64Var(&ell, "ell", 1, "confidence exponent: failure probability n^-ell")
	pf.Int64Var(&rngSeed, "seed", 0, "RNG seed, 0 for the fixed default stream")
	pf.IntVar(&workers, "workers", 1, "parallel sampling goroutines")
	pf.IntVar(&maxDepth, "depth", 0, "diffusion horizon in hops, 0 for the full process")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	_ = rootCmd.MarkPersistentFlagRequired("graph")

	rrCmd.Flags().IntVar(&theta, "theta", 0, "RR sample count, 0 derives it from the closed-form bound")

	immCmd.Flags().BoolVar(&corrected, "corrected", false, "use the erratum-corrected bounds with sample regeneration")

	cimmCmd.Flags().Float64Var(&budget, "budget", 50, "total divisible budget")
	cimmCmd.Flags().Float64Var(&stepSize, "step", 1, "allocation increment")
	cimmCmd.Flags().Float64Var(&delta, "delta", 1, "activation rate: p(x) = 1-exp(-delta*x)")

	shapleyCmd.Flags().IntVar(&topk, "topk", 50, "number of ranked nodes to report")
	sniCmd.Flags().IntVar(&topk, "topk", 50, "number of ranked nodes to report")

	prmCmd.Flags().IntVar(&maxTime, "time", 1, "number of placement rounds")
	prmCmd.Flags().BoolVar(&corrected, "corrected", false, "use the erratum-corrected bounds with sample regeneration")
	prmCmd.Flags().StringVar(&policy, "policy", "greedy", "placement policy: greedy|uniform|decreasing|random|reuse")
	prmCmd.Flags().StringVar(&weights, "weights", "uniform", "round weighting: uniform|hyperbolic|geometric")

	rootCmd.AddCommand(rrCmd, timCmd, immCmd, cimmCmd, shapleyCmd, sniCmd, prmCmd)
}

func options() rrinfl.Options {
	opts := rrinfl.DefaultOptions()
	opts.Seed = rngSeed
	opts.Workers = workers
	opts.MaxDepth = maxDepth
	opts.Logger = logger()
	return opts
}

func logger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func boundsMode() bounds.Mode {
	if corrected {
		return bounds.ModeCorrected
	}
	return bounds.ModeOriginal
}

func loadGraph() (*simgraph.Digraph, error) {
	f, err := os.Open(graphPath)
	if err != nil {
		return nil, fmt.Errorf("opening graph: %w", err)
	}
	defer f.Close()
	g, err := simgraph.ReadEdgeList(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", graphPath, err)
	}
	logger().Info("graph loaded", "nodes", g.NumNodes(), "edges", g.NumEdges())
	return g, nil
}

func report(res *rrinfl.Result) error {
	if err := res.WriteFiles(outputDir); err != nil {
		return err
	}
	log := logger()
	log.Info("run finished",
		"algorithm", res.Algorithm,
		"seeds", len(res.Seeds),
		"theta", res.Theta,
		"edges_visited", res.EdgesVisited,
		"elapsed", res.Elapsed)
	if len(res.Influence) > 0 {
		fmt.Printf("selected %d seeds, estimated influence %.2f (%.3fs)\n",
			len(res.Seeds), res.Influence[len(res.Influence)-1], res.Elapsed.Seconds())
	}
	return nil
}

func runAttribution(singleNode bool) error {
	g, err := loadGraph()
	if err != nil {
		return err
	}
	var res *rrinfl.ShapleyResult
	if singleNode {
		res, err = rrinfl.SNIInfl{}.Build(g, eps, ell, topk, options())
	} else {
		res, err = rrinfl.ShapleyInfl{}.Build(g, eps, ell, topk, options())
	}
	if err != nil {
		return err
	}
	if err := res.WriteFiles(outputDir, singleNode); err != nil {
		return err
	}
	fmt.Printf("ranked %d nodes over %d samples (%.3fs)\n",
		len(res.Values), res.Theta, res.Elapsed.Seconds())
	return nil
}

func parsePolicy(s string) (rrinfl.Policy, error) {
	switch strings.ToLower(s) {
	case "greedy":
		return rrinfl.PolicyGreedy, nil
	case "uniform":
		return rrinfl.PolicyUniform, nil
	case "decreasing":
		return rrinfl.PolicyDecreasing, nil
	case "random":
		return rrinfl.PolicyRandom, nil
	case "reuse":
		return rrinfl.PolicyReuse, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", s)
	}
}

func parseWeights(s string) (rrinfl.WeightMode, error) {
	switch strings.ToLower(s) {
	case "uniform":
		return rrinfl.WeightUniform, nil
	case "hyperbolic":
		return rrinfl.WeightHyperbolic, nil
	case "geometric":
		return rrinfl.WeightGeometric, nil
	default:
		return 0, fmt.Errorf("unknown weight mode %q", s)
	}
}
