package decrbfs

import (
	"decrbfs/bfserr"
	"decrbfs/boundedbfs"
)

// BatchDelete removes every edge in edges from the live-edge set and
// repairs Dist, Parent and Children so all invariants hold again once it
// returns. Deleting an edge that is already dead, or appears twice in the
// same batch, is a silent no-op. The call is atomic from the caller's
// perspective: the structure is only ever observed in a stable state.
func (t *Tree) BatchDelete(edges []Edge) error {
	for _, e := range edges {
		if e.U < 0 || e.U >= t.n || e.V < 0 || e.V >= t.n {
			return bfserr.NewPrecondition("BatchDelete", "edge (%d,%d) has endpoint out of range [0,%d)", e.U, e.V, t.n)
		}
	}

	if t.log != nil {
		t.log.Info().Int("batch_size", len(edges)).Msg("decrbfs: batch delete start")
	}

	affected := t.pass1Prune(edges)
	t.pass2CheapReparent(affected)

	var exhausted []int
	for _, v := range affected {
		if t.parentDeleted[v] {
			exhausted = append(exhausted, v)
		}
	}
	t.pass3LayeredRepair(exhausted)

	if t.log != nil {
		t.log.Info().Msg("decrbfs: batch delete done")
	}
	return nil
}

// pass1Prune removes each live edge in edges from the live-edge set and
// out-adjacency, detaching v from the tree wherever (u,v) was its tree
// edge. It returns every v whose parent was deleted, for Pass 2 to retry.
func (t *Tree) pass1Prune(edges []Edge) []int {
	seen := make(map[int64]struct{}, len(edges))
	var affected []int
	for _, e := range edges {
		key := t.encodeEdge(e.U, e.V)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, alive := t.live[key]; !alive {
			continue
		}
		delete(t.live, key)
		t.adjOut[e.U] = removeFirst(t.adjOut[e.U], e.V)

		if t.parent[e.V] == e.U {
			t.parent[e.V] = -1
			t.children[e.U] = removeFirst(t.children[e.U], e.V)
			t.parentDeleted[e.V] = true
			affected = append(affected, e.V)
		}
	}
	return affected
}

// pass2CheapReparent retries, once, the NextWith scan for every vertex
// whose parent Pass 1 just deleted, starting from its existing Scan
// cursor. Vertices still exhausted afterward are handed to Pass 3.
func (t *Tree) pass2CheapReparent(affected []int) {
	for _, v := range affected {
		rank := t.in[v].NextWith(t.scan[v], t.parentPred(v, t.dist[v]-1))
		t.scan[v] = rank
		if rank > t.in[v].Size() {
			continue
		}
		w, err := t.in[v].Query(rank)
		if err != nil {
			bfserr.Fatal(t.log, "BatchDelete", "pass2: querying rank %d of In(%d): %v", rank, v, err)
		}
		t.parent[v] = w
		t.children[w] = append(t.children[w], v)
		t.parentDeleted[v] = false
	}
}

// phaseOutcome is Pass 3's per-vertex result, collected during the parallel
// phase so that Children mutations can be applied in a deterministic
// serial merge afterward.
type phaseOutcome struct {
	v           int
	found       bool
	newParent   int
	newChildren []int
}

// pass3LayeredRepair runs phases i = 0..L. Phase i's suspect set U is the
// union of fresh seeds (vertices whose pre-batch distance was i+1 and whose
// Pass 2 retry failed) and survivors carried over from phase i-1 (vertices,
// and their swept-up children, whose distance is growing past i+1). A
// vertex leaves U as soon as NextWith finds it a parent at distance i;
// everything still in U when a phase ends has its distance bumped to i+2
// and is re-examined in phase i+1, or detached once i+2 exceeds L.
func (t *Tree) pass3LayeredRepair(seeds []int) {
	buckets := make([][]int, t.L+1)
	for _, v := range seeds {
		i := t.dist[v] - 1
		if i >= 0 && i <= t.L {
			buckets[i] = append(buckets[i], v)
		}
	}

	u := boundedbfs.NewEmptySparse()
	for i := 0; i <= t.L; i++ {
		if len(buckets[i]) > 0 {
			u.AddVertices(buckets[i])
		}
		if u.Size() == 0 {
			continue
		}
		if t.log != nil {
			t.log.Info().Int("phase", i).Int("suspects", u.Size()).Msg("decrbfs: pass3 phase")
		}

		seq := u.ToSeq()
		results := make([]phaseOutcome, len(seq))
		idxOf := make(map[int]int, len(seq))
		for idx, v := range seq {
			idxOf[v] = idx
		}

		u.Apply(func(v int) {
			rank := t.in[v].NextWith(t.scan[v], t.parentPred(v, i))
			t.scan[v] = rank
			if rank <= t.in[v].Size() {
				w, err := t.in[v].Query(rank)
				if err != nil {
					bfserr.Fatal(t.log, "BatchDelete", "pass3: querying rank %d of In(%d): %v", rank, v, err)
				}
				results[idxOf[v]] = phaseOutcome{v: v, found: true, newParent: w}
				return
			}
			t.scan[v] = 1
			children := t.children[v]
			t.children[v] = nil
			results[idxOf[v]] = phaseOutcome{v: v, newChildren: append([]int(nil), children...)}
		})

		var next []int
		for _, r := range results {
			if r.found {
				t.parent[r.v] = r.newParent
				t.children[r.newParent] = append(t.children[r.newParent], r.v)
				t.parentDeleted[r.v] = false
				continue
			}
			next = append(next, r.v)
			for _, c := range r.newChildren {
				t.parent[c] = -1
				t.parentDeleted[c] = true
				next = append(next, c)
			}
		}

		newDist := i + 2
		var carry []int
		for _, v := range next {
			if newDist > t.L {
				t.dist[v] = boundedbfs.Unreached(t.L)
				t.parent[v] = -1
				continue
			}
			t.dist[v] = newDist
			carry = append(carry, v)
		}
		u = boundedbfs.NewSparse(carry)
	}
}

func removeFirst(s []int, x int) []int {
	for i, v := range s {
		if v == x {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
