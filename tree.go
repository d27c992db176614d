// Package decrbfs maintains, under repeated batch edge deletions, the exact
// shortest-path distance from a fixed source to every vertex of a directed
// graph (capped at a fixed depth bound) and a BFS tree realizing those
// distances. Edges are never inserted; distances only ever grow.
//
// Construct computes the initial state by a bounded, frontier-parallel BFS
// (package boundedbfs) and builds one priority package Structure per vertex
// over its in-neighbors. BatchDelete repairs Dist, Parent and Children by
// the three-pass algorithm in batchdelete.go, never rescanning an
// in-neighbor of a vertex at a distance it has already rejected.
package decrbfs

import (
	"github.com/rs/zerolog"

	"decrbfs/bfserr"
	"decrbfs/boundedbfs"
	"decrbfs/graphutils"
	"decrbfs/priority"
)

// Tree is the decremental single-source bounded-distance BFS structure. Its
// zero value is not usable; obtain one from Construct.
type Tree struct {
	n, s, L int

	adjOut [][]int
	live   map[int64]struct{}

	dist          []int
	parent        []int
	children      [][]int
	scan          []int
	parentDeleted []bool
	in            []*priority.Structure

	log            *zerolog.Logger
	buildThreshold int
}

// Construct builds a Tree over adjOut (out-adjacency lists indexed by
// vertex id) rooted at source s with depth bound L. It runs boundedbfs.BoundedBFS
// once to compute the initial Dist, builds every vertex's in-neighbor
// PriorityStructure, and scans each to its initial Parent via NextWith.
func Construct(adjOut [][]int, s, L int, opts ...Option) (*Tree, error) {
	n := len(adjOut)
	if s < 0 || s >= n {
		return nil, bfserr.NewPrecondition("Construct", "source %d out of range [0,%d)", s, n)
	}
	if L < 0 {
		return nil, bfserr.NewPrecondition("Construct", "depth bound %d must be non-negative", L)
	}
	for u, nbrs := range adjOut {
		for _, v := range nbrs {
			if v < 0 || v >= n {
				return nil, bfserr.NewPrecondition("Construct", "edge (%d,%d) has endpoint out of range [0,%d)", u, v, n)
			}
		}
	}

	t := &Tree{n: n, s: s, L: L, buildThreshold: defaultPriorityBuildThreshold}
	for _, opt := range opts {
		opt(t)
	}

	t.adjOut = make([][]int, n)
	t.live = make(map[int64]struct{})
	for u, nbrs := range adjOut {
		t.adjOut[u] = append([]int(nil), nbrs...)
		for _, v := range nbrs {
			t.live[t.encodeEdge(u, v)] = struct{}{}
		}
	}

	adjIn := graphutils.TransposeAdj(adjOut)
	t.dist = boundedbfs.BoundedBFS(adjOut, adjIn, s, L)

	t.in = make([]*priority.Structure, n)
	for v := 0; v < n; v++ {
		ps := priority.New(n).WithBuildThreshold(t.buildThreshold).WithLogger(t.log)
		pairs := make([]priority.Pair, len(adjIn[v]))
		for i, w := range adjIn[v] {
			pairs[i] = priority.Pair{Value: w, Priority: w + 1}
		}
		if err := ps.Initialize(pairs); err != nil {
			bfserr.Fatal(t.log, "Construct", "building In(%d): %v", v, err)
		}
		t.in[v] = ps
	}

	t.parent = make([]int, n)
	for v := range t.parent {
		t.parent[v] = -1
	}
	t.children = make([][]int, n)
	t.scan = make([]int, n)
	t.parentDeleted = make([]bool, n)

	for v := 0; v < n; v++ {
		if v == s || t.dist[v] > L {
			t.scan[v] = t.in[v].Size() + 1
			continue
		}
		rank := t.in[v].NextWith(1, t.parentPred(v, t.dist[v]-1))
		if rank > t.in[v].Size() {
			bfserr.Fatal(t.log, "Construct", "vertex %d reported at distance %d has no live in-neighbor at distance %d", v, t.dist[v], t.dist[v]-1)
		}
		w, err := t.in[v].Query(rank)
		if err != nil {
			bfserr.Fatal(t.log, "Construct", "querying rank %d of In(%d): %v", rank, v, err)
		}
		t.parent[v] = w
		t.children[w] = append(t.children[w], v)
		t.scan[v] = rank
	}

	if t.log != nil {
		t.log.Info().Int("n", n).Int("s", s).Int("L", L).Msg("decrbfs: tree constructed")
	}
	return t, nil
}

// Dist reports the distance from the source to v. ok is false when v's
// distance exceeds the structure's depth bound (the ⊤ sentinel).
func (t *Tree) Dist(v int) (dist int, ok bool) {
	if v < 0 || v >= t.n {
		return 0, false
	}
	if t.dist[v] > t.L {
		return 0, false
	}
	return t.dist[v], true
}

// Parent reports v's tree parent. ok is false when v is the source or is
// currently detached from the tree.
func (t *Tree) Parent(v int) (parent int, ok bool) {
	if v < 0 || v >= t.n || t.parent[v] < 0 {
		return 0, false
	}
	return t.parent[v], true
}

// Children returns the vertices whose tree parent is v, in no particular
// order. The returned slice is a copy; mutating it does not affect the tree.
func (t *Tree) Children(v int) []int {
	if v < 0 || v >= t.n {
		return nil
	}
	return append([]int(nil), t.children[v]...)
}

func (t *Tree) encodeEdge(u, v int) int64 {
	return int64(u)*int64(t.n) + int64(v)
}

func (t *Tree) liveEdge(u, v int) bool {
	_, ok := t.live[t.encodeEdge(u, v)]
	return ok
}

// parentPred is the predicate every NextWith scan for v's parent uses:
// candidate w must sit at targetDist and the edge (w,v) must currently be
// alive. A dead edge's entry is never erased from In(v); it is simply
// rejected here, over and over, cheaply.
func (t *Tree) parentPred(v, targetDist int) func(w int) bool {
	return func(w int) bool {
		return t.dist[w] == targetDist && t.liveEdge(w, v)
	}
}
