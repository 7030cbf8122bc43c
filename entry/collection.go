package entry

import (
	"sort"

	"github.com/mosaicnetworks/hashlog/digest"
)

// FindHeads returns the entries in entries that are not referenced by
// Next() in any other entry of entries, ordered ascending by (ID, Hash),
// per spec.md section 4.2.
func FindHeads(entries []*Entry) []*Entry {
	referenced := make(map[string]bool, len(entries))
	for _, e := range entries {
		for _, n := range e.next {
			referenced[n.String()] = true
		}
	}

	heads := make([]*Entry, 0, len(entries))
	for _, e := range entries {
		if !referenced[e.hash.String()] {
			heads = append(heads, e)
		}
	}

	sort.Slice(heads, func(i, j int) bool {
		if heads[i].id != heads[j].id {
			return heads[i].id < heads[j].id
		}
		return heads[i].hash.String() < heads[j].hash.String()
	})

	return heads
}

// FindHeadHashes is a convenience wrapper around FindHeads that returns
// just the digests, in the same order.
func FindHeadHashes(entries []*Entry) []digest.Digest {
	heads := FindHeads(entries)
	out := make([]digest.Digest, len(heads))
	for i, h := range heads {
		out[i] = h.hash
	}
	return out
}

// FindTails returns the entries in entries whose Next() contains at
// least one digest not present as an entry in entries, plus entries
// whose Next() is empty. These seed the deterministic sort in Sort.
func FindTails(entries []*Entry) []*Entry {
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.hash.String()] = true
	}

	tails := make([]*Entry, 0)
	for _, e := range entries {
		if len(e.next) == 0 {
			tails = append(tails, e)
			continue
		}
		for _, n := range e.next {
			if !known[n.String()] {
				tails = append(tails, e)
				break
			}
		}
	}

	return tails
}

// FindTailHashes returns the digests that appear in some entry's Next()
// but are not themselves the hash of any entry in entries: the missing
// parents at the frontier of the known set.
func FindTailHashes(entries []*Entry) []digest.Digest {
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.hash.String()] = true
	}

	seen := make(map[string]bool)
	out := make([]digest.Digest, 0)
	for _, e := range entries {
		for _, n := range e.next {
			if known[n.String()] || seen[n.String()] {
				continue
			}
			seen[n.String()] = true
			out = append(out, n)
		}
	}

	return out
}

// FindParents returns the chain of ancestors of e reachable by
// repeatedly following the first digest in the current entry's Next()
// that names an entry in entries, ordered by ascending Seq. e itself is
// not included.
func FindParents(e *Entry, entries []*Entry) []*Entry {
	byHash := make(map[string]*Entry, len(entries))
	for _, c := range entries {
		byHash[c.hash.String()] = c
	}

	parents := make([]*Entry, 0)
	current := e
	for {
		var parent *Entry
		for _, n := range current.next {
			if p, ok := byHash[n.String()]; ok {
				parent = p
				break
			}
		}
		if parent == nil {
			break
		}
		parents = append(parents, parent)
		current = parent
	}

	sort.Slice(parents, func(i, j int) bool {
		return parents[i].seq < parents[j].seq
	})

	return parents
}

// LatestSeq returns the maximum Seq observed in entries, or -1 if empty.
func LatestSeq(entries []*Entry) int {
	latest := -1
	for _, e := range entries {
		if e.seq > latest {
			latest = e.seq
		}
	}
	return latest
}
