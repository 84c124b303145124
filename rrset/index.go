package rrset

// Index is the inverted index from node id to the samples that contain it.
// degrees[v] always equals len(hits[v]) and equals the number of consumed
// Store entries whose member set contains v.
type Index struct {
	degrees  []int
	hits     [][]int
	consumed int // number of Store samples already folded in
}

// NewIndex returns an empty index over n nodes.
func NewIndex(n int) *Index {
	return &Index{
		degrees: make([]int, n),
		hits:    make([][]int, n),
	}
}

// NumNodes reports the node range the index covers.
func (ix *Index) NumNodes() int { return len(ix.degrees) }

// Samples reports how many Store entries have been folded in.
func (ix *Index) Samples() int { return ix.consumed }

// Degree reports the number of samples containing v.
func (ix *Index) Degree(v int) int { return ix.degrees[v] }

// Hits returns the indices of samples containing v. Callers must not
// mutate the returned slice.
func (ix *Index) Hits(v int) []int { return ix.hits[v] }

// Rebuild reconstructs the index from the full Store content.
// Idempotent: calling it twice without intervening sampling yields
// identical degrees and hit lists.
func (ix *Index) Rebuild(st *Store) {
	for v := range ix.degrees {
		ix.degrees[v] = 0
		ix.hits[v] = ix.hits[v][:0]
	}
	ix.consumed = 0
	ix.Extend(st)
}

// Extend folds in samples appended to the Store since the last
// Rebuild/Extend. Must be called from a single goroutine, after any
// parallel sampling phase has fully joined.
func (ix *Index) Extend(st *Store) {
	for i := ix.consumed; i < st.Len(); i++ {
		for _, v := range st.Sample(i) {
			ix.degrees[v]++
			ix.hits[v] = append(ix.hits[v], i)
		}
	}
	ix.consumed = st.Len()
}
