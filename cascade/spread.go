package cascade

import (
	"math/rand"

	"github.com/takhmin/iminfl/simgraph"
)

// Spread estimates the expected forward influence spread of seeds on g under
// the independent-cascade model by running rounds independent simulations
// and averaging the activated counts. Duplicate and out-of-range seeds are
// ignored. rounds <= 0 returns 0.
//
// Only the Shapley and continuous-budget drivers use this estimator, to
// cross-check RR-based estimates; the selection loop itself never calls it.
func Spread(g simgraph.Graph, seeds []int, rounds int, rng *rand.Rand) float64 {
	n := g.NumNodes()
	if rounds <= 0 || n == 0 {
		return 0
	}

	visited := make([]int, n)
	queue := make([]int, 0, n)
	total := 0

	for round := 1; round <= rounds; round++ {
		queue = queue[:0]
		for _, s := range seeds {
			if s < 0 || s >= n || visited[s] == round {
				continue
			}
			visited[s] = round
			queue = append(queue, s)
		}
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			g.OutNeighbors(v, func(w int, p float64) bool {
				if visited[w] != round && rng.Float64() < p {
					visited[w] = round
					queue = append(queue, w)
				}
				return true
			})
		}
		total += len(queue)
	}
	return float64(total) / float64(rounds)
}
