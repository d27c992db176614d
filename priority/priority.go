// Package priority implements the per-vertex rank/priority index described
// by the decremental BFS maintainer: a dense-universe segment tree over
// priorities [1,maxP], queryable by rank (1 = highest priority) or by
// priority, with a doubling NextWith scan for "first rank satisfying a
// predicate at or after k".
package priority

import (
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"decrbfs/bfserr"
	"decrbfs/bitutils"
)

// defaultBuildThreshold is the subtree size below which Initialize stops
// spawning goroutines and finishes the build sequentially.
const defaultBuildThreshold = 32

// Pair is a (value, priority) input to Initialize.
type Pair struct {
	Value    int
	Priority int
}

// Structure is an array-backed segment tree over the priority universe
// [1,maxP]. Node i's children are 2*i and 2*i+1; cnt[i] is the number of
// present leaves in node i's interval. Each leaf is the single priority of
// its interval, so the tree shape depends only on the priority universe,
// never on which values happen to be present.
type Structure struct {
	maxP      int
	threshold int

	cnt     []int
	present []bool
	value   []int

	mu  sync.RWMutex
	log *zerolog.Logger
}

// New returns a Structure over priorities [1,maxP]. Its storage is allocated
// by Initialize; the other methods panic until Initialize has been called.
func New(maxP int) *Structure {
	return &Structure{maxP: maxP, threshold: defaultBuildThreshold}
}

// WithBuildThreshold overrides the sequential-fallback size used by
// Initialize's parallel build. Intended for tests exercising the parallel
// split path on small inputs.
func (s *Structure) WithBuildThreshold(n int) *Structure {
	if n > 0 {
		s.threshold = n
	}
	return s
}

// WithLogger attaches a logger used to emit a Fatal-level event immediately
// before any internal-inconsistency panic this structure raises. A nil
// logger (the default) disables that logging.
func (s *Structure) WithLogger(l *zerolog.Logger) *Structure {
	s.log = l
	return s
}

// Initialize replaces the structure's contents with pairs, building the
// tree in parallel: pairs are sorted by priority once, then the build
// recurses by splitting the priority interval at its midpoint and the
// sorted slice at the first pair above it, spawning a goroutine for one
// sibling while the caller continues with the other whenever both halves
// are non-empty, the remaining work is at least the build threshold, and
// the recursion is shallower than a depth cap derived from GOMAXPROCS.
// Two sibling subtrees never touch the same tree node, so no
// further synchronization is needed.
func (s *Structure) Initialize(pairs []Pair) error {
	for _, p := range pairs {
		if p.Priority < 1 || p.Priority > s.maxP {
			return bfserr.NewPrecondition("Initialize", "priority %d out of range [1,%d]", p.Priority, s.maxP)
		}
	}
	items := append([]Pair(nil), pairs...)
	sort.Slice(items, func(i, j int) bool { return items[i].Priority < items[j].Priority })
	for i := 1; i < len(items); i++ {
		if items[i].Priority == items[i-1].Priority {
			return bfserr.NewPrecondition("Initialize", "duplicate priority %d", items[i].Priority)
		}
	}

	size := 4 * (s.maxP + 1)
	s.cnt = make([]int, size)
	s.present = make([]bool, size)
	s.value = make([]int, size)

	maxDepth := 0
	for workers := runtime.GOMAXPROCS(0); (1 << maxDepth) < workers; maxDepth++ {
	}

	s.build(1, 0, len(items), 1, s.maxP, items, 0, maxDepth)
	return nil
}

func (s *Structure) build(node, start, end, L, R int, items []Pair, depth, maxDepth int) {
	if start >= end {
		return
	}
	s.cnt[node] = end - start

	if L == R {
		s.present[node] = true
		s.value[node] = items[start].Value
		return
	}

	mid := (L + R) / 2
	m := start + sort.Search(end-start, func(i int) bool { return items[start+i].Priority > mid })

	spawnRight := depth < maxDepth && end-start >= s.threshold && start < m && m < end
	if spawnRight {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.build(2*node+1, m, end, mid+1, R, items, depth+1, maxDepth)
		}()
		s.build(2*node, start, m, L, mid, items, depth+1, maxDepth)
		wg.Wait()
		return
	}
	s.build(2*node, start, m, L, mid, items, depth+1, maxDepth)
	s.build(2*node+1, m, end, mid+1, R, items, depth+1, maxDepth)
}

// Size returns the number of elements currently stored.
func (s *Structure) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cnt[1]
}

// Query returns the value at rank k (1 = highest priority).
func (s *Structure) Query(k int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := s.cnt[1]
	if k < 1 || k > n {
		return 0, bfserr.NewPrecondition("Query", "rank %d out of range [1,%d]", k, n)
	}
	return s.queryByRank(1, 1, s.maxP, k), nil
}

func (s *Structure) queryByRank(node, L, R, k int) int {
	if k < 1 || k > s.cnt[node] {
		bfserr.Fatal(s.log, "queryByRank", "rank %d outside node count %d", k, s.cnt[node])
	}
	if L == R {
		return s.value[node]
	}
	mid := (L + R) / 2
	rightCount := s.cnt[2*node+1]
	if rightCount >= k {
		return s.queryByRank(2*node+1, mid+1, R, k)
	}
	return s.queryByRank(2*node, L, mid, k-rightCount)
}

// UpdateValue replaces the value stored at rank k, leaving its priority
// unchanged.
func (s *Structure) UpdateValue(k, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.cnt[1]
	if k < 1 || k > n {
		return bfserr.NewPrecondition("UpdateValue", "rank %d out of range [1,%d]", k, n)
	}
	s.updateValue(1, 1, s.maxP, k, v)
	return nil
}

func (s *Structure) updateValue(node, L, R, k, v int) {
	if L == R {
		s.value[node] = v
		return
	}
	mid := (L + R) / 2
	rightCount := s.cnt[2*node+1]
	if rightCount >= k {
		s.updateValue(2*node+1, mid+1, R, k, v)
		return
	}
	s.updateValue(2*node, L, mid, k-rightCount, v)
}

// Find returns the (value, rank) of the element with priority p.
func (s *Structure) Find(p int) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p < 1 || p > s.maxP {
		return 0, 0, bfserr.NewPrecondition("Find", "priority %d out of range [1,%d]", p, s.maxP)
	}
	if !s.presentAt(1, 1, s.maxP, p) {
		return 0, 0, bfserr.NewPrecondition("Find", "priority %d absent", p)
	}
	v, rank := s.findByPriority(1, 1, s.maxP, p, 0)
	return v, rank, nil
}

func (s *Structure) presentAt(node, L, R, p int) bool {
	if s.cnt[node] == 0 {
		return false
	}
	if L == R {
		return s.present[node]
	}
	mid := (L + R) / 2
	if p <= mid {
		return s.presentAt(2*node, L, mid, p)
	}
	return s.presentAt(2*node+1, mid+1, R, p)
}

func (s *Structure) findByPriority(node, L, R, p, rank int) (int, int) {
	if L == R {
		return s.value[node], rank + 1
	}
	mid := (L + R) / 2
	if p <= mid {
		return s.findByPriority(2*node, L, mid, p, rank+s.cnt[2*node+1])
	}
	return s.findByPriority(2*node+1, mid+1, R, p, rank)
}

// UpdatePriority moves the element at rank k to priority p, which must not
// already be occupied.
func (s *Structure) UpdatePriority(k, p int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.cnt[1]
	if k < 1 || k > n {
		return bfserr.NewPrecondition("UpdatePriority", "rank %d out of range [1,%d]", k, n)
	}
	if p < 1 || p > s.maxP {
		return bfserr.NewPrecondition("UpdatePriority", "priority %d out of range [1,%d]", p, s.maxP)
	}
	if s.presentAt(1, 1, s.maxP, p) {
		return bfserr.NewPrecondition("UpdatePriority", "priority %d already occupied", p)
	}
	v := s.erase(1, 1, s.maxP, k)
	s.insert(1, 1, s.maxP, p, v)
	return nil
}

// Erase removes the element at rank k and returns its value.
func (s *Structure) Erase(k int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.cnt[1]
	if k < 1 || k > n {
		return 0, bfserr.NewPrecondition("Erase", "rank %d out of range [1,%d]", k, n)
	}
	return s.erase(1, 1, s.maxP, k), nil
}

func (s *Structure) erase(node, L, R, k int) int {
	s.cnt[node]--
	if L == R {
		s.present[node] = false
		return s.value[node]
	}
	mid := (L + R) / 2
	rightCount := s.cnt[2*node+1]
	if rightCount >= k {
		return s.erase(2*node+1, mid+1, R, k)
	}
	return s.erase(2*node, L, mid, k-rightCount)
}

func (s *Structure) insert(node, L, R, p, v int) {
	s.cnt[node]++
	if L == R {
		s.present[node] = true
		s.value[node] = v
		return
	}
	mid := (L + R) / 2
	if p <= mid {
		s.insert(2*node, L, mid, p, v)
		return
	}
	s.insert(2*node+1, mid+1, R, p, v)
}

// NextWith returns the smallest rank j >= k with pred(Query(j)) true, or
// Size()+1 if no such rank exists. The scan doubles its window on each
// miss ([k,k], [k+1,k+2], [k+3,k+6], ...), so the work across a caller's
// whole sequence of advancing NextWith calls over the same structure is
// linear in the ranks ultimately consumed rather than quadratic in the
// window sizes probed along the way.
func (s *Structure) NextWith(k int, pred func(v int) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := s.cnt[1]
	if n == 0 {
		return 1
	}
	p := k
	if p < 1 {
		p = 1
	}
	if p > n {
		return n + 1
	}
	for i := 0; p <= n; i++ {
		length := 1 << i
		end := p + length - 1
		if end > n {
			end = n
		}
		if best := s.nextWithRange(p, end, pred); best <= end {
			return best
		}
		p += length
	}
	return n + 1
}

// nextWithRange evaluates pred over every rank in [L,R] in parallel,
// reducing to the smallest satisfying rank via an atomic min.
func (s *Structure) nextWithRange(L, R int, pred func(v int) bool) int {
	best := int64(R + 1)
	var wg sync.WaitGroup
	for j := L; j <= R; j++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			if pred(s.queryByRank(1, 1, s.maxP, rank)) {
				bitutils.FetchMin(&best, int64(rank))
			}
		}(j)
	}
	wg.Wait()
	return int(best)
}
