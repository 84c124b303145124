package simgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadEdgeList parses a plain-text edge list into a Digraph.
//
// Each non-empty line holds "u v p": source id, target id, activation
// probability, separated by whitespace. The probability column may be
// omitted, in which case p defaults to 1. Lines starting with '#' are
// comments. Node ids are dense non-negative integers.
func ReadEdgeList(r io.Reader) (*Digraph, error) {
	var b Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 2 or 3 columns, got %d", ErrParse, line, len(fields))
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: source %q", ErrParse, line, fields[0])
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: target %q", ErrParse, line, fields[1])
		}
		p := 1.0
		if len(fields) == 3 {
			p, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: probability %q", ErrParse, line, fields[2])
			}
		}
		if err := b.AddEdge(u, v, p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("simgraph: reading edge list: %w", err)
	}
	return b.Build(), nil
}
