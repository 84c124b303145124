package rrinfl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// outputFiles maps an algorithm name to its (seed file, timing file) pair,
// names kept compatible with the reference tooling.
var outputFiles = map[string][2]string{
	"rrinfl":  {"rr_infl.txt", "time_rr_infl.txt"},
	"timplus": {"rr_timplus_infl.txt", "time_rr_timplus_infl.txt"},
	"imm":     {"rr_imm_infl.txt", "time_rr_imm_infl.txt"},
	"cimm":    {"rr_cimm.txt", "time_rr_cimm.txt"},
	"shapley": {"rrs_ASVRR_infl.txt", "time_rrs_ASVRR_infl.txt"},
	"sni":     {"rr_sni_infl.txt", "time_rr_sni_infl.txt"},
	"prmimm":  {"rr_prm_imm_infl.txt", "time_rr_prm_imm_infl.txt"},
}

// WriteTo writes the seed list as tab-delimited text, one row per seed:
// node id, placement round, cumulative estimated influence.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for i, s := range r.Seeds {
		infl := 0.0
		if i < len(r.Influence) {
			infl = r.Influence[i]
		}
		n, err := fmt.Fprintf(w, "%d\t%d\t%g\n", s.Node, s.Time, infl)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteFiles writes the seed list and the wall-clock timing log into dir,
// using the algorithm's conventional file names.
func (r *Result) WriteFiles(dir string) error {
	names, ok := outputFiles[r.Algorithm]
	if !ok {
		return fmt.Errorf("rrinfl: no output file names for algorithm %q", r.Algorithm)
	}
	if err := writeFile(filepath.Join(dir, names[0]), func(w io.Writer) error {
		_, err := r.WriteTo(w)
		return err
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, names[1]), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%g\n", r.Elapsed.Seconds())
		return err
	})
}

// WriteTo writes one row per ranked node: node id, value, hit count.
func (r *ShapleyResult) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, sv := range r.Values {
		hits := 0
		if sv.Node < len(r.HitCount) {
			hits = r.HitCount[sv.Node]
		}
		n, err := fmt.Fprintf(w, "%d\t%g\t%d\n", sv.Node, sv.Value, hits)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// WriteFiles writes the ranked values and the timing log into dir.
// singleNode selects the SNI file names over the Shapley ones.
func (r *ShapleyResult) WriteFiles(dir string, singleNode bool) error {
	algo := "shapley"
	if singleNode {
		algo = "sni"
	}
	names := outputFiles[algo]
	if err := writeFile(filepath.Join(dir, names[0]), func(w io.Writer) error {
		_, err := r.WriteTo(w)
		return err
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, names[1]), func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%g\n", r.Elapsed.Seconds())
		return err
	})
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rrinfl: creating %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
