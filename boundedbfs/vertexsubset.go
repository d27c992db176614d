// Package boundedbfs computes the initial distance array for the
// decremental structure: a layered BFS from the source, capped at depth L,
// expanded in parallel within each layer.
package boundedbfs

import (
	"sync"

	"decrbfs/parlay_go"
)

// VertexSubset is a set of vertices in either sparse (explicit list) or
// dense (boolean-indexed) form, switched between by EdgeMap.Run depending
// on which representation is cheaper for the next expansion.
type VertexSubset struct {
	isSparse bool
	n        int
	sparse   []int
	dense    []bool
}

// Size returns the number of vertices in the subset.
func (vs *VertexSubset) Size() int {
	return vs.n
}

// NewEmptySparse returns an empty sparse subset.
func NewEmptySparse() VertexSubset {
	return VertexSubset{isSparse: true, n: 0, sparse: []int{}}
}

// NewSparse wraps an existing vertex slice as a sparse subset.
func NewSparse(vertices []int) VertexSubset {
	return VertexSubset{isSparse: true, n: len(vertices), sparse: vertices}
}

// NewSingle returns a sparse subset containing only v.
func NewSingle(v int) VertexSubset {
	return VertexSubset{isSparse: true, n: 1, sparse: []int{v}}
}

// NewDense wraps a boolean membership slice as a dense subset.
func NewDense(dense []bool) VertexSubset {
	return VertexSubset{isSparse: false, n: countTrue(dense), dense: dense}
}

// AddVertices adds V to the subset, appending in parallel when sparse and
// setting membership bits sequentially when dense (matching the cost model
// of the representation: a sequential scatter into a dense array is already
// O(1) per element, so there is nothing to parallelize there).
func (vs *VertexSubset) AddVertices(V []int) {
	if vs.isSparse {
		old := vs.sparse
		combined := make([]int, len(old)+len(V))
		parlay_go.Append(old, combined[:len(old)])
		parlay_go.Append(V, combined[len(old):])
		vs.sparse = combined
	} else {
		for _, v := range V {
			vs.dense[v] = true
		}
	}
	vs.n += len(V)
}

// ToSeq returns the subset's vertices as a slice regardless of
// representation.
func (vs *VertexSubset) ToSeq() []int {
	if vs.isSparse {
		return vs.sparse
	}
	return parlay_go.PackIndex(vs.dense)
}

// Apply runs f over every vertex in the subset, one goroutine per vertex.
func (vs *VertexSubset) Apply(f func(int)) {
	var wg sync.WaitGroup
	run := func(v int) {
		defer wg.Done()
		f(v)
	}
	if vs.isSparse {
		for _, v := range vs.sparse {
			wg.Add(1)
			go run(v)
		}
	} else {
		for i, active := range vs.dense {
			if active {
				wg.Add(1)
				go run(i)
			}
		}
	}
	wg.Wait()
}

func countTrue(b []bool) int {
	cnt := 0
	for _, v := range b {
		if v {
			cnt++
		}
	}
	return cnt
}
