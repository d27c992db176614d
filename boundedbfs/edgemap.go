package boundedbfs

import (
	"sync"
	"sync/atomic"
)

// EdgeMap expands a VertexSubset by one step of a frontier/edge-map sweep.
// fa is applied to every live edge (u,v) touching the frontier; cond gates
// which vertices are even worth considering, letting the sparse/dense
// traversal skip work on already-settled vertices. Edges are plain
// neighbor ids in G and GT.
type EdgeMap struct {
	n    int
	m    int64
	fa   func(u, v int) bool
	cond func(v int) bool
	G    [][]int
	GT   [][]int
}

// NewEdgeMap builds an EdgeMap over forward adjacency G and its transpose
// GT, counting total edges in parallel (mirrors the per-vertex degree sum
// ligra needs to pick sparse vs. dense).
func NewEdgeMap(G, GT [][]int, fa func(u, v int) bool, cond func(v int) bool) *EdgeMap {
	n := len(G)
	var total int64
	var wg sync.WaitGroup
	wg.Add(n)
	for _, edges := range G {
		go func(cnt int) {
			defer wg.Done()
			atomic.AddInt64(&total, int64(cnt))
		}(len(edges))
	}
	wg.Wait()
	return &EdgeMap{n: n, m: total, fa: fa, cond: cond, G: G, GT: GT}
}

// edgeMapSparse expands every vertex's out-edges in parallel, collecting
// per-goroutine local results before merging to avoid lock contention on
// the shared output.
func (em *EdgeMap) edgeMapSparse(vertices []int) []int {
	var wg sync.WaitGroup
	var mu sync.Mutex
	res := make([]int, 0)
	wg.Add(len(vertices))
	for _, u := range vertices {
		go func(src int) {
			defer wg.Done()
			var local []int
			for _, v := range em.G[src] {
				if em.cond(v) && em.fa(src, v) {
					local = append(local, v)
				}
			}
			if len(local) > 0 {
				mu.Lock()
				res = append(res, local...)
				mu.Unlock()
			}
		}(u)
	}
	wg.Wait()
	return res
}

// edgeMapDense scans every vertex in parallel and, for those passing cond,
// checks its in-edges against the current frontier membership.
func (em *EdgeMap) edgeMapDense(vertices []bool) []bool {
	result := make([]bool, em.n)
	var wg sync.WaitGroup
	wg.Add(em.n)
	for v := 0; v < em.n; v++ {
		go func(idx int) {
			defer wg.Done()
			if !em.cond(idx) {
				return
			}
			for _, u := range em.GT[idx] {
				if vertices[u] && em.fa(u, idx) {
					result[idx] = true
					break
				}
			}
		}(v)
	}
	wg.Wait()
	return result
}

// Run picks the sparse or dense expansion based on the same work heuristics
// as the VertexSubset it's given, returning the next frontier.
func (em *EdgeMap) Run(vs VertexSubset) VertexSubset {
	if vs.isSparse {
		var d int64
		var wg sync.WaitGroup
		wg.Add(len(vs.sparse))
		for _, u := range vs.sparse {
			go func(src int) {
				defer wg.Done()
				atomic.AddInt64(&d, int64(len(em.G[src])))
			}(u)
		}
		wg.Wait()
		if int64(vs.Size())+d > em.m/10 {
			dVertices := make([]bool, em.n)
			for _, i := range vs.sparse {
				dVertices[i] = true
			}
			return NewDense(em.edgeMapDense(dVertices))
		}
		return NewSparse(em.edgeMapSparse(vs.sparse))
	}
	if countTrue(vs.dense) > em.n/20 {
		return NewDense(em.edgeMapDense(vs.dense))
	}
	return NewSparse(em.edgeMapSparse(vs.ToSeq()))
}
