package entry

import "sort"

// Sort flattens the partial order of entries into the deterministic
// total order defined by spec.md section 4.3: causal (a parent always
// precedes its children), interleaved (concurrent chains are ordered
// ascending by ID rather than block by block), and deterministic (the
// result depends only on the input set, not its order).
//
// This is the one algorithm in hashlog that must be implemented to the
// letter of the spec rather than simplified: the tie-break rules are
// what make two participants that append concurrently converge on the
// same Log.items after Join.
func Sort(entries []*Entry) []*Entry {
	byHash := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		byHash[e.hash.String()] = e
	}

	// bySeq indexes entries by (id, seq) so the "is there a pending
	// sibling with a smaller seq" check only visits entries of e's chain.
	bySeq := make(map[string]map[int]*Entry)
	for _, e := range entries {
		if bySeq[e.id] == nil {
			bySeq[e.id] = make(map[int]*Entry)
		}
		bySeq[e.id][e.seq] = e
	}

	// children indexes entries by the hash of their parents, so that
	// once an entry is placed in result we can enqueue its direct
	// children ordered ascending by (id, seq).
	children := make(map[string][]*Entry)
	for _, e := range entries {
		for _, n := range e.next {
			children[n.String()] = append(children[n.String()], e)
		}
	}
	for hash := range children {
		cs := children[hash]
		sort.Slice(cs, func(i, j int) bool {
			if cs[i].id != cs[j].id {
				return cs[i].id < cs[j].id
			}
			return cs[i].seq < cs[j].seq
		})
		children[hash] = cs
	}

	queue := append([]*Entry(nil), FindTails(entries)...)
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].id != queue[j].id {
			return queue[i].id < queue[j].id
		}
		return queue[i].seq < queue[j].seq
	})

	inQueue := make(map[string]int) // hash -> count currently queued
	for _, e := range queue {
		inQueue[e.hash.String()]++
	}

	processed := make(map[string]bool, len(entries))
	result := make([]*Entry, 0, len(entries))

	// indexOf scans the queue for a pending entry's position, so that e
	// can be inserted "immediately after" it, implementing the deferral
	// rules of section 4.3 step 3.
	indexOf := func(hash string) int {
		for i, e := range queue {
			if e.hash.String() == hash {
				return i
			}
		}
		return -1
	}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		inQueue[e.hash.String()]--

		if processed[e.hash.String()] {
			continue
		}

		// Defer behind any parent still pending.
		deferredAfter := -1
		for _, n := range e.next {
			if inQueue[n.String()] > 0 {
				if pos := indexOf(n.String()); pos > deferredAfter {
					deferredAfter = pos
				}
			}
		}

		// Defer behind a same-chain sibling with a strictly smaller seq
		// that is still pending.
		if deferredAfter == -1 {
			for seq, sibling := range bySeq[e.id] {
				if seq < e.seq && inQueue[sibling.hash.String()] > 0 {
					if pos := indexOf(sibling.hash.String()); pos > deferredAfter {
						deferredAfter = pos
					}
				}
			}
		}

		if deferredAfter >= 0 {
			insertAt := deferredAfter + 1
			queue = append(queue[:insertAt], append([]*Entry{e}, queue[insertAt:]...)...)
			inQueue[e.hash.String()]++
			continue
		}

		result = append(result, e)
		processed[e.hash.String()] = true

		for _, child := range children[e.hash.String()] {
			if processed[child.hash.String()] {
				continue
			}
			queue = append(queue, child)
			inQueue[child.hash.String()]++
		}
	}

	return result
}
