package daglog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hashlog/entry"
	"github.com/mosaicnetworks/hashlog/store"
)

func newAppended(t *testing.T, s store.BlockStore, id string, payloads ...string) *Log {
	t.Helper()
	ctx := context.Background()

	l, err := Create(id, nil, nil)
	require.NoError(t, err)

	for _, p := range payloads {
		var err error
		l, err = Append(ctx, s, l, p)
		require.NoError(t, err)
	}
	return l
}

func TestAppendThenRenderMatchesWorkedExample(t *testing.T) {
	s := store.NewInmemStore()
	l := newAppended(t, s, "A", "one", "two", "three", "four", "five")

	require.Equal(t, "five\n└─four\n  └─three\n    └─two\n      └─one", l.String())
}

func TestAppendAdvancesHeadsAndSeq(t *testing.T) {
	s := store.NewInmemStore()
	ctx := context.Background()

	l, err := Create("A", nil, nil)
	require.NoError(t, err)

	l, err = Append(ctx, s, l, "one")
	require.NoError(t, err)
	require.Len(t, l.Heads(), 1)
	require.Equal(t, 0, l.Items()[0].Seq())

	l, err = Append(ctx, s, l, "two")
	require.NoError(t, err)
	require.Len(t, l.Heads(), 1)
	require.True(t, l.Heads()[0].Equal(l.Items()[len(l.Items())-1].Hash()))
	require.Equal(t, 1, l.Items()[len(l.Items())-1].Seq())
}

func TestJoinUnionsAndInterleavesByEntrySort(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0", "a1")
	b := newAppended(t, s, "B", "b0", "b1")

	joined, err := Join(a, b, -1, "")
	require.NoError(t, err)
	require.Len(t, joined.Items(), 4)
	require.Equal(t, entry.Sort(append(append([]*entry.Entry{}, a.Items()...), b.Items()...)), joined.Items())
}

func TestJoinIsCommutative(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0", "a1")
	b := newAppended(t, s, "B", "b0", "b1")

	ab, err := Join(a, b, -1, "")
	require.NoError(t, err)
	ba, err := Join(b, a, -1, "")
	require.NoError(t, err)

	require.Equal(t, hashesOf(ab), hashesOf(ba))
	require.Equal(t, ab.ID(), ba.ID())
}

func TestJoinIsAssociative(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0", "a1")
	b := newAppended(t, s, "B", "b0", "b1")
	c := newAppended(t, s, "C", "c0", "c1")

	abThenC, err := Join(mustJoin(t, a, b), c, -1, "")
	require.NoError(t, err)
	aThenBC, err := Join(a, mustJoin(t, b, c), -1, "")
	require.NoError(t, err)

	require.Equal(t, hashesOf(abThenC), hashesOf(aThenBC))
}

func TestJoinIsIdempotent(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0", "a1", "a2")

	joined, err := Join(a, a, -1, "")
	require.NoError(t, err)

	require.Equal(t, hashesOf(a), hashesOf(joined))
}

func TestJoinRespectsSizeCapAndRecomputesHeads(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0", "a1", "a2")
	b := newAppended(t, s, "B", "b0", "b1", "b2")

	joined, err := Join(a, b, 4, "")
	require.NoError(t, err)
	require.Len(t, joined.Items(), 4)

	// heads recomputed over the kept set: every returned head must
	// itself be one of the surviving items.
	present := make(map[string]bool, len(joined.Items()))
	for _, e := range joined.Items() {
		present[e.Hash().String()] = true
	}
	for _, h := range joined.Heads() {
		require.True(t, present[h.String()])
	}
}

func TestJoinAllFoldsLeftToRight(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0")
	b := newAppended(t, s, "B", "b0")
	c := newAppended(t, s, "C", "c0")

	folded, err := JoinAll([]*Log{a, b, c}, -1)
	require.NoError(t, err)
	require.Len(t, folded.Items(), 3)

	viaTwo, err := Join(mustJoin(t, a, b), c, -1, "")
	require.NoError(t, err)
	require.Equal(t, hashesOf(viaTwo), hashesOf(folded))
}

func TestToMultihashThenFromMultihashRoundTrips(t *testing.T) {
	s := store.NewInmemStore()
	ctx := context.Background()
	l := newAppended(t, s, "A", "one", "two", "three")

	h, err := ToMultihash(ctx, s, l)
	require.NoError(t, err)

	restored, err := FromMultihash(ctx, s, h, -1, nil, nil, nil)
	require.NoError(t, err)

	require.Equal(t, l.ID(), restored.ID())
	require.Equal(t, hashesOf(l), hashesOf(restored))
}

func TestFromMultihashWithBoundedLengthReturnsTail(t *testing.T) {
	s := store.NewInmemStore()
	ctx := context.Background()
	l := newAppended(t, s, "A", "one", "two", "three")

	h, err := ToMultihash(ctx, s, l)
	require.NoError(t, err)

	restored, err := FromMultihash(ctx, s, h, 1, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, restored.Items(), 1)
	require.Equal(t, "three", restored.Items()[0].Payload())
}

func TestExpandIsIdempotentOnCompleteLog(t *testing.T) {
	s := store.NewInmemStore()
	ctx := context.Background()
	l := newAppended(t, s, "A", "one", "two")

	expanded, err := Expand(ctx, s, l, 10, nil, nil)
	require.NoError(t, err)
	require.Equal(t, hashesOf(l), hashesOf(expanded))
}

func TestExpandFillsInMissingTail(t *testing.T) {
	s := store.NewInmemStore()
	ctx := context.Background()
	full := newAppended(t, s, "A", "one", "two", "three")

	partial, err := Create(full.ID(), full.Items()[2:], nil)
	require.NoError(t, err)
	require.Len(t, partial.Items(), 1)

	expanded, err := Expand(ctx, s, partial, 5, nil, nil)
	require.NoError(t, err)
	require.Equal(t, hashesOf(full), hashesOf(expanded))
}

func TestDiffReturnsEntriesUniqueToReceiver(t *testing.T) {
	s := store.NewInmemStore()
	a := newAppended(t, s, "A", "a0", "a1")
	b := newAppended(t, s, "B", "b0")

	diff := a.Diff(b)
	require.Len(t, diff, 2)
}

func mustJoin(t *testing.T, a, b *Log) *Log {
	t.Helper()
	joined, err := Join(a, b, -1, "")
	require.NoError(t, err)
	return joined
}

func hashesOf(l *Log) []string {
	out := make([]string, len(l.Items()))
	for i, e := range l.Items() {
		out[i] = e.Hash().String()
	}
	return out
}
