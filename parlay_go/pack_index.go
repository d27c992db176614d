package parlay_go

import (
	"runtime"
	"sync"
)

// PackIndex returns the indices of the true entries of dense, computed in
// parallel chunks. Used by VertexSubset to convert a dense frontier back to
// a sparse vertex list once it shrinks below the dense/sparse crossover.
func PackIndex(dense []bool) []int {
	n := len(dense)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	locals := make([][]int, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			workers = w
			break
		}
		wg.Add(1)
		go func(idx, lo, hi int) {
			defer wg.Done()
			var local []int
			for i := lo; i < hi; i++ {
				if dense[i] {
					local = append(local, i)
				}
			}
			locals[idx] = local
		}(w, lo, hi)
	}
	wg.Wait()

	// Merge all locals
	total := 0
	for i := 0; i < workers; i++ {
		total += len(locals[i])
	}
	result := make([]int, 0, total)
	for i := 0; i < workers; i++ {
		result = append(result, locals[i]...)
	}
	return result
}
