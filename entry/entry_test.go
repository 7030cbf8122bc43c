package entry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hashlog/digest"
	"github.com/mosaicnetworks/hashlog/store"
)

func TestCreateAndFromHash(t *testing.T) {
	ctx := context.Background()
	s := store.NewInmemStore()

	e, err := Create(ctx, s, "A", 0, "one", nil)
	require.NoError(t, err)
	require.True(t, e.Hash().IsValid())
	require.Equal(t, "A", e.ID())
	require.Equal(t, 0, e.Seq())

	fetched, err := FromHash(ctx, s, e.Hash())
	require.NoError(t, err)
	require.True(t, Equal(e, fetched))
	require.Equal(t, e.Payload(), fetched.Payload())
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := store.NewInmemStore()

	_, err := Create(ctx, nil, "A", 0, "x", nil)
	require.Error(t, err)

	_, err = Create(ctx, s, "", 0, "x", nil)
	require.Error(t, err)

	_, err = Create(ctx, s, "A", -1, "x", nil)
	require.Error(t, err)

	_, err = Create(ctx, s, "A", 0, nil, nil)
	require.Error(t, err)
}

func TestCreateNormalizesNext(t *testing.T) {
	ctx := context.Background()
	s := store.NewInmemStore()

	e1, err := Create(ctx, s, "A", 0, "one", nil)
	require.NoError(t, err)

	e2, err := Create(ctx, s, "A", 1, "two", []digest.Digest{e1.Hash(), {}})
	require.NoError(t, err)

	require.Len(t, e2.Next(), 1)
	require.True(t, e2.Next()[0].Equal(e1.Hash()))
}

func TestHasChild(t *testing.T) {
	ctx := context.Background()
	s := store.NewInmemStore()

	e1, err := Create(ctx, s, "A", 0, "one", nil)
	require.NoError(t, err)

	e2, err := Create(ctx, s, "A", 1, "two", []digest.Digest{e1.Hash()})
	require.NoError(t, err)

	require.True(t, HasChild(e2, e1))
	require.False(t, HasChild(e1, e2))
}

func TestFromHashMissing(t *testing.T) {
	ctx := context.Background()
	s := store.NewInmemStore()

	e1, err := Create(ctx, s, "A", 0, "one", nil)
	require.NoError(t, err)

	other := store.NewInmemStore()
	_, err = FromHash(ctx, other, e1.Hash())
	require.Error(t, err)
}
