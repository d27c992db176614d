package boundedbfs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveBFS recomputes bounded distances by a plain sequential BFS, used to
// cross-check BoundedBFS against a brute-force recomputation.
func naiveBFS(adjOut [][]int, s, L int) []int {
	n := len(adjOut)
	dist := make([]int, n)
	for i := range dist {
		dist[i] = Unreached(L)
	}
	dist[s] = 0
	frontier := []int{s}
	for d := 0; d < L && len(frontier) > 0; d++ {
		var next []int
		for _, u := range frontier {
			for _, v := range adjOut[u] {
				if dist[v] == Unreached(L) {
					dist[v] = d + 1
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	return dist
}

func transpose(adjOut [][]int) [][]int {
	n := len(adjOut)
	adjIn := make([][]int, n)
	for u, nbrs := range adjOut {
		for _, v := range nbrs {
			adjIn[v] = append(adjIn[v], u)
		}
	}
	return adjIn
}

func TestBoundedBFS_DAG(t *testing.T) {
	adjOut := [][]int{
		{1, 2},
		{3},
		{3, 4},
		{5},
		{},
		{},
	}
	adjIn := transpose(adjOut)

	got := BoundedBFS(adjOut, adjIn, 0, 3)
	want := naiveBFS(adjOut, 0, 3)
	assert.Equal(t, want, got)
	assert.Equal(t, []int{0, 1, 1, 2, 2, 3}, got)
}

func TestBoundedBFS_RespectsDepthBound(t *testing.T) {
	n := 10
	adjOut := make([][]int, n)
	for i := 0; i < n-1; i++ {
		adjOut[i] = []int{i + 1}
	}
	adjIn := transpose(adjOut)

	got := BoundedBFS(adjOut, adjIn, 0, 3)
	require.Len(t, got, n)
	for v := 0; v <= 3; v++ {
		assert.Equal(t, v, got[v])
	}
	for v := 4; v < n; v++ {
		assert.Equal(t, Unreached(3), got[v])
	}
}

func TestBoundedBFS_Unreachable(t *testing.T) {
	adjOut := [][]int{
		{1},
		{},
		{},
	}
	adjIn := transpose(adjOut)
	got := BoundedBFS(adjOut, adjIn, 0, 5)
	assert.Equal(t, []int{0, 1, Unreached(5)}, got)
}

func TestBoundedBFS_SingleVertex(t *testing.T) {
	adjOut := [][]int{{}}
	adjIn := transpose(adjOut)
	got := BoundedBFS(adjOut, adjIn, 0, 0)
	assert.Equal(t, []int{0}, got)
}

func TestBoundedBFS_ZeroDepthBound(t *testing.T) {
	adjOut := [][]int{{1}, {2}, {}}
	adjIn := transpose(adjOut)
	got := BoundedBFS(adjOut, adjIn, 0, 0)
	assert.Equal(t, []int{0, Unreached(0), Unreached(0)}, got)
}

func TestVertexSubset_SparseAndDense(t *testing.T) {
	sparse := NewSparse([]int{1, 3, 5})
	assert.Equal(t, 3, sparse.Size())
	assert.ElementsMatch(t, []int{1, 3, 5}, sparse.ToSeq())

	dense := NewDense([]bool{false, true, false, true, false, true})
	assert.Equal(t, 3, dense.Size())
	assert.ElementsMatch(t, []int{1, 3, 5}, dense.ToSeq())
}

func TestVertexSubset_AddVertices(t *testing.T) {
	vs := NewEmptySparse()
	vs.AddVertices([]int{2, 4})
	vs.AddVertices([]int{6, 8, 10})
	assert.Equal(t, 5, vs.Size())
	assert.ElementsMatch(t, []int{2, 4, 6, 8, 10}, vs.ToSeq())

	dense := NewDense([]bool{false, true, false})
	dense.AddVertices([]int{0, 2})
	assert.Equal(t, 3, dense.Size())
	assert.ElementsMatch(t, []int{0, 1, 2}, dense.ToSeq())
}

func TestVertexSubset_Apply(t *testing.T) {
	vs := NewSparse([]int{0, 1, 2, 3, 4})
	seen := make([]bool, 5)
	var mu sync.Mutex
	vs.Apply(func(v int) {
		mu.Lock()
		seen[v] = true
		mu.Unlock()
	})
	for _, ok := range seen {
		assert.True(t, ok)
	}
}
