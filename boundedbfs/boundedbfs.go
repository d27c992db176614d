package boundedbfs

import "decrbfs/bitutils"

// Unreached is the sentinel distance for a vertex with no directed path
// from the source of length at most L: L+1, one past the bound, so it can
// never collide with a genuinely reachable distance.
func Unreached(L int) int {
	return L + 1
}

// BoundedBFS computes the exact shortest-path distance from s to every
// vertex, capped at depth L, over a frozen snapshot of the out-adjacency
// (and its transpose GT, used for the dense edge-map direction). Distances
// beyond L are reported as Unreached(L).
//
// Expansion within a layer is parallel: every vertex's distance claim is a
// single atomic CAS from "unset" to the current round, so two goroutines
// discovering the same vertex through different in-edges in the same layer
// cannot both win.
func BoundedBFS(adjOut, adjIn [][]int, s, L int) []int {
	n := len(adjOut)
	dist := make([]int64, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[s] = 0

	round := int64(0)
	cond := func(v int) bool {
		return dist[v] == -1
	}
	fa := func(u, v int) bool {
		return bitutils.ClaimOnce(&dist[v], -1, round)
	}
	em := NewEdgeMap(adjOut, adjIn, fa, cond)

	frontier := NewSingle(s)
	for frontier.Size() > 0 && int(round) < L {
		round++
		frontier = em.Run(frontier)
	}

	out := make([]int, n)
	for v, d := range dist {
		if d == -1 {
			out[v] = Unreached(L)
		} else {
			out[v] = int(d)
		}
	}
	return out
}
