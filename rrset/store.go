package rrset

// Store owns the generated RR samples and their root nodes.
// Grows monotonically within a sampling phase; Reset discards everything.
// Not safe for concurrent mutation except through the disjoint-slot protocol
// used by AddSimulationsParallel (Reserve + Set on non-overlapping indices).
type Store struct {
	samples [][]int
	roots   []int
}

// Len reports the number of stored samples.
func (s *Store) Len() int { return len(s.samples) }

// Append adds one sample with its root. The Store takes ownership of members.
func (s *Store) Append(members []int, root int) {
	s.samples = append(s.samples, members)
	s.roots = append(s.roots, root)
}

// Sample returns the member set of sample i. Callers must not mutate it.
func (s *Store) Sample(i int) []int { return s.samples[i] }

// Root returns the root node that generated sample i.
func (s *Store) Root(i int) int { return s.roots[i] }

// Reset discards all samples.
func (s *Store) Reset() {
	s.samples = s.samples[:0]
	s.roots = s.roots[:0]
}

// Reserve appends n empty slots and returns the index of the first one.
// Parallel workers fill the reserved range via Set, each worker owning a
// disjoint sub-range.
func (s *Store) Reserve(n int) int {
	base := len(s.samples)
	s.samples = append(s.samples, make([][]int, n)...)
	s.roots = append(s.roots, make([]int, n)...)
	return base
}

// Set fills a previously reserved slot.
func (s *Store) Set(i int, members []int, root int) {
	s.samples[i] = members
	s.roots[i] = root
}
