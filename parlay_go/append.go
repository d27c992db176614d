package parlay_go

import (
	"runtime"
	"sync"
)

// Append copies src into dst in parallel chunks. Used by VertexSubset to
// merge a newly-discovered frontier slice into an existing sparse set.
func Append(src []int, dst []int) {
	n := len(src)
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(s, d []int) {
			defer wg.Done()
			copy(d, s)
		}(src[start:end], dst[start:end])
	}
	wg.Wait()
}
