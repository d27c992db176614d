package bitutils

import "sync/atomic"

// ClaimOnce atomically transitions *addr from unset to val and reports
// whether this call won the race. Used where many goroutines may discover
// the same slot in the same instant and only the first should act on it.
func ClaimOnce(addr *int64, unset, val int64) bool {
	return atomic.CompareAndSwapInt64(addr, unset, val)
}

// FetchMin atomically lowers *addr to v if v is smaller, retrying under
// contention. Used by parallel reductions that need the minimum index
// satisfying a predicate across a window of concurrently-evaluated ranks.
func FetchMin(addr *int64, v int64) {
	for {
		old := atomic.LoadInt64(addr)
		if v >= old {
			return
		}
		if atomic.CompareAndSwapInt64(addr, old, v) {
			return
		}
	}
}
