package daglog

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hashlog/common"
	"github.com/mosaicnetworks/hashlog/digest"
	"github.com/mosaicnetworks/hashlog/entry"
	"github.com/mosaicnetworks/hashlog/fetcher"
	"github.com/mosaicnetworks/hashlog/store"
)

// Create builds a new Log. If id is empty, a fresh unique identifier is
// generated. If entries is non-nil but heads is nil, heads is computed
// via entry.FindHeads.
func Create(id string, entries []*entry.Entry, heads []digest.Digest) (*Log, error) {
	if id == "" {
		id = newID()
	}

	items := append([]*entry.Entry(nil), entry.Sort(entries)...)

	if heads == nil {
		heads = headsOf(items)
	}

	return &Log{id: id, items: items, heads: heads}, nil
}

func headsOf(items []*entry.Entry) []digest.Digest {
	hs := entry.FindHeads(items)
	out := make([]digest.Digest, len(hs))
	for i, h := range hs {
		out[i] = h.Hash()
	}
	return out
}

// Append creates a new entry on l's chain referencing l's current heads,
// and returns a new Log with that entry added.
func Append(ctx context.Context, s store.BlockStore, l *Log, payload any) (*Log, error) {
	if s == nil {
		return nil, common.NewStoreNotDefined()
	}
	if l == nil {
		return nil, common.NewLogNotDefined()
	}

	seq := entry.LatestSeq(l.items) + 1

	e, err := entry.Create(ctx, s, l.id, seq, payload, l.heads)
	if err != nil {
		return nil, err
	}

	items := append(append([]*entry.Entry(nil), l.items...), e)
	sorted := entry.Sort(items)

	return &Log{
		id:    l.id,
		items: sorted,
		heads: []digest.Digest{e.Hash()},
	}, nil
}

// Join merges a and b into a new Log, purely (no I/O). The result's id
// defaults to the id of whichever of a, b sorts first ascending by id,
// unless id is non-empty, in which case it is used instead.
//
// If size is non-negative, only the last size entries of the sorted
// union are kept, and heads is recomputed over the kept set rather than
// retaining any trimmed original heads (the choice documented as option
// (a) in spec.md section 9's Open Question).
func Join(a, b *Log, size int, id string) (*Log, error) {
	if a == nil || b == nil {
		return nil, common.NewLogNotDefined()
	}

	first, second := a, b
	if second.id < first.id {
		first, second = second, first
	}

	resultID := id
	if resultID == "" {
		resultID = first.id
	}

	merged := unionByHash(first.items, second.items)
	sorted := entry.Sort(merged)

	if size >= 0 && len(sorted) > size {
		sorted = sorted[len(sorted)-size:]
	}

	return &Log{
		id:    resultID,
		items: sorted,
		heads: headsOf(sorted),
	}, nil
}

func unionByHash(a, b []*entry.Entry) []*entry.Entry {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]*entry.Entry, 0, len(a)+len(b))

	for _, e := range a {
		if !seen[e.Hash().String()] {
			seen[e.Hash().String()] = true
			out = append(out, e)
		}
	}
	for _, e := range b {
		if !seen[e.Hash().String()] {
			seen[e.Hash().String()] = true
			out = append(out, e)
		}
	}

	return out
}

// JoinAll left-folds Join over logs. It returns a LogNotDefined error if
// logs is empty, since there is no sensible zero value to return.
func JoinAll(logs []*Log, size int) (*Log, error) {
	if len(logs) == 0 {
		return nil, common.NewLogNotDefined()
	}

	acc := logs[0]
	for _, l := range logs[1:] {
		joined, err := Join(acc, l, size, "")
		if err != nil {
			return nil, err
		}
		acc = joined
	}

	return acc, nil
}

// Expand locates l's missing parents (entry.FindTailHashes) and pulls up
// to length * len(tails) additional entries through fetcher.Fetch,
// merging them with l's existing items and capping the result at
// len(l.Items())+length entries (or returning everything if length < 0).
func Expand(ctx context.Context, s store.BlockStore, l *Log, length int, logger *logrus.Entry, onProgress fetcher.OnProgress) (*Log, error) {
	if s == nil {
		return nil, common.NewStoreNotDefined()
	}
	if l == nil {
		return nil, common.NewLogNotDefined()
	}

	tails := entry.FindTailHashes(l.items)
	if len(tails) == 0 {
		// Already fully materialized: idempotent no-op.
		return l, nil
	}

	seeds := make([]string, len(tails))
	for i, t := range tails {
		seeds[i] = t.String()
	}

	max := -1
	if length >= 0 {
		max = length * len(tails)
	}

	known := make(map[string]bool, len(l.items))
	for _, e := range l.items {
		known[e.Hash().String()] = true
	}

	fetched, _, err := fetcher.Fetch(ctx, s, seeds, fetcher.Options{
		Max:        max,
		Exclude:    known,
		Logger:     logger,
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, err
	}

	merged := unionByHash(l.items, fetched)
	sorted := entry.Sort(merged)

	keep := len(l.items) + length
	if length < 0 || keep > len(sorted) {
		keep = len(sorted)
	}
	sorted = sorted[len(sorted)-keep:]

	return &Log{
		id:    l.id,
		items: sorted,
		heads: headsOf(sorted),
	}, nil
}

// FromEntry builds a Log seeded from one or more Entry values (not
// hashes). It fetches their ancestors up to a total of length entries
// (entries already given count against that budget), excluding any hash
// in exclude, and returns a Log whose id is taken from the first entry
// in entries.
func FromEntry(ctx context.Context, s store.BlockStore, entries []*entry.Entry, length int, exclude map[string]bool, logger *logrus.Entry, onProgress fetcher.OnProgress) (*Log, error) {
	if s == nil {
		return nil, common.NewStoreNotDefined()
	}
	if len(entries) == 0 {
		return nil, common.NewInvalidArgument("entries must be non-empty")
	}

	seeds := make([]string, 0)
	for _, e := range entries {
		for _, n := range e.Next() {
			seeds = append(seeds, n.String())
		}
	}

	max := -1
	if length >= 0 {
		max = length - len(entries)
		if max < 0 {
			max = 0
		}
	}

	excl := make(map[string]bool, len(exclude)+len(entries))
	for h, v := range exclude {
		excl[h] = v
	}
	for _, e := range entries {
		excl[e.Hash().String()] = true
	}

	fetched, _, err := fetcher.Fetch(ctx, s, seeds, fetcher.Options{
		Max:        max,
		Exclude:    excl,
		Logger:     logger,
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, err
	}

	merged := unionByHash(entries, fetched)
	sorted := entry.Sort(merged)

	return &Log{
		id:    entries[0].ID(),
		items: sorted,
		heads: headsOf(sorted),
	}, nil
}

// FromMultihash fetches the byte image at h, parses it as a Log on-store
// image ({id, heads}), pulls up to length entries reachable from those
// heads, and returns a materialized Log with that id and heads.
func FromMultihash(ctx context.Context, s store.BlockStore, h digest.Digest, length int, exclude map[string]bool, logger *logrus.Entry, onProgress fetcher.OnProgress) (*Log, error) {
	if s == nil {
		return nil, common.NewStoreNotDefined()
	}
	if !h.IsValid() {
		return nil, common.NewInvalidHash(h.String())
	}

	raw, err := s.Get(ctx, h)
	if err != nil {
		return nil, common.NewStoreError(err)
	}

	var img logImage
	if derr := digest.Decode(raw, &img); derr != nil || img.ID == "" {
		return nil, common.NewNotALog(h.String())
	}

	seeds := img.Heads

	max := -1
	if length >= 0 {
		max = length
	}

	fetched, _, err := fetcher.Fetch(ctx, s, seeds, fetcher.Options{
		Max:        max,
		Exclude:    exclude,
		Logger:     logger,
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, err
	}

	sorted := entry.Sort(fetched)

	heads := make([]digest.Digest, 0, len(img.Heads))
	for _, hs := range img.Heads {
		d, err := digest.Parse(hs)
		if err != nil {
			return nil, common.NewNotALog(h.String())
		}
		heads = append(heads, d)
	}

	return &Log{
		id:    img.ID,
		items: sorted,
		heads: heads,
	}, nil
}

// ToMultihash serializes l's on-store image (JSON) and writes it to s,
// returning its digest. It fails with EmptyLog if l has no items or no
// heads.
func ToMultihash(ctx context.Context, s store.BlockStore, l *Log) (digest.Digest, error) {
	if s == nil {
		return digest.Digest{}, common.NewStoreNotDefined()
	}
	if l == nil {
		return digest.Digest{}, common.NewLogNotDefined()
	}
	if len(l.items) == 0 || len(l.heads) == 0 {
		return digest.Digest{}, common.NewEmptyLog()
	}

	raw, err := l.JSON()
	if err != nil {
		return digest.Digest{}, common.NewInvalidArgument(err.Error())
	}

	d, err := s.Put(ctx, raw)
	if err != nil {
		return digest.Digest{}, common.NewStoreError(err)
	}

	return d, nil
}
