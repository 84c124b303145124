package rrinfl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takhmin/iminfl/rrinfl"
)

// TestResult_WriteTo emits one tab-delimited row per seed.
func TestResult_WriteTo(t *testing.T) {
	res := &rrinfl.Result{
		Algorithm: "imm",
		Seeds:     []rrinfl.Seed{{Node: 4}, {Node: 7, Time: 2}},
		Influence: []float64{3.5, 5},
	}

	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "4\t0\t3.5\n7\t2\t5\n", buf.String())
}

// TestResult_WriteTo_MissingInfluence pads short influence traces with zero
// instead of panicking.
func TestResult_WriteTo_MissingInfluence(t *testing.T) {
	res := &rrinfl.Result{
		Seeds:     []rrinfl.Seed{{Node: 1}, {Node: 2}},
		Influence: []float64{2},
	}
	var buf bytes.Buffer
	_, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "1\t0\t2\n2\t0\t0\n", buf.String())
}

// TestResult_WriteFiles places the seed and timing files under the
// algorithm's conventional names.
func TestResult_WriteFiles(t *testing.T) {
	dir := t.TempDir()
	res := &rrinfl.Result{
		Algorithm: "timplus",
		Seeds:     []rrinfl.Seed{{Node: 3}},
		Influence: []float64{4.25},
		Elapsed:   1500 * time.Millisecond,
	}
	require.NoError(t, res.WriteFiles(dir))

	seeds, err := os.ReadFile(filepath.Join(dir, "rr_timplus_infl.txt"))
	require.NoError(t, err)
	assert.Equal(t, "3\t0\t4.25\n", string(seeds))

	timing, err := os.ReadFile(filepath.Join(dir, "time_rr_timplus_infl.txt"))
	require.NoError(t, err)
	secs, err := strconv.ParseFloat(strings.TrimSpace(string(timing)), 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, secs, 1e-9)
}

// TestResult_WriteFiles_UnknownAlgorithm refuses to invent file names.
func TestResult_WriteFiles_UnknownAlgorithm(t *testing.T) {
	res := &rrinfl.Result{Algorithm: "mystery"}
	err := res.WriteFiles(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

// TestShapleyResult_WriteTo emits node, value, and hit count per row.
func TestShapleyResult_WriteTo(t *testing.T) {
	res := &rrinfl.ShapleyResult{
		Values: []rrinfl.ShapleyValue{
			{Node: 2, Value: 1.75},
			{Node: 0, Value: 0.5},
		},
		HitCount: []int{10, 0, 40},
	}
	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "2\t1.75\t40\n0\t0.5\t10\n", buf.String())
}

// TestShapleyResult_WriteFiles: singleNode flips the output file pair.
func TestShapleyResult_WriteFiles(t *testing.T) {
	res := &rrinfl.ShapleyResult{
		Values:   []rrinfl.ShapleyValue{{Node: 1, Value: 2}},
		HitCount: []int{0, 6},
		Elapsed:  250 * time.Millisecond,
	}

	shapleyDir := t.TempDir()
	require.NoError(t, res.WriteFiles(shapleyDir, false))
	_, err := os.Stat(filepath.Join(shapleyDir, "rrs_ASVRR_infl.txt"))
	assert.NoError(t, err)

	sniDir := t.TempDir()
	require.NoError(t, res.WriteFiles(sniDir, true))
	body, err := os.ReadFile(filepath.Join(sniDir, "rr_sni_infl.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1\t2\t6\n", string(body))
}
