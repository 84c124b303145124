package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takhmin/iminfl/rrinfl"
)

// TestParsePolicy accepts every documented name, case-insensitively.
func TestParsePolicy(t *testing.T) {
	cases := map[string]rrinfl.Policy{
		"greedy":     rrinfl.PolicyGreedy,
		"uniform":    rrinfl.PolicyUniform,
		"decreasing": rrinfl.PolicyDecreasing,
		"random":     rrinfl.PolicyRandom,
		"Reuse":      rrinfl.PolicyReuse,
	}
	for in, want := range cases {
		got, err := parsePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parsePolicy("bogus")
	assert.Error(t, err)
}

// TestParseWeights accepts every documented mode and rejects the rest.
func TestParseWeights(t *testing.T) {
	cases := map[string]rrinfl.WeightMode{
		"uniform":    rrinfl.WeightUniform,
		"hyperbolic": rrinfl.WeightHyperbolic,
		"Geometric":  rrinfl.WeightGeometric,
	}
	for in, want := range cases {
		got, err := parseWeights(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseWeights("linear")
	assert.Error(t, err)
}

// TestRRCommand_EndToEnd drives the rr subcommand against a small edge list
// and checks the conventional output files appear.
func TestRRCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	graph := filepath.Join(dir, "graph.txt")
	edges := "# chain\n0 1 1\n1 2 1\n2 3 1\n"
	require.NoError(t, os.WriteFile(graph, []byte(edges), 0o644))

	rootCmd.SetArgs([]string{
		"rr",
		"--graph", graph,
		"--output", dir,
		"--k", "1",
		"--theta", "2000",
	})
	require.NoError(t, rootCmd.Execute())

	body, err := os.ReadFile(filepath.Join(dir, "rr_infl.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0\t0\t4\n", string(body), "the chain source wins with full spread")

	_, err = os.Stat(filepath.Join(dir, "time_rr_infl.txt"))
	assert.NoError(t, err)
}

// TestLoadGraph_MissingFile surfaces the open failure with the path attached.
func TestLoadGraph_MissingFile(t *testing.T) {
	graphPath = filepath.Join(t.TempDir(), "absent.txt")
	_, err := loadGraph()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening graph")
}
