package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mosaicnetworks/hashlog/common"
	"github.com/mosaicnetworks/hashlog/digest"
)

// blockStoreFactories lists every BlockStore implementation under test, so
// both exercise identical conformance cases. Mirrors the dual
// InmemStore/BadgerStore test coverage in mosaicnetworks/babble's
// src/hashgraph package.
func blockStoreFactories(t *testing.T) map[string]func() BlockStore {
	return map[string]func() BlockStore{
		"inmem": func() BlockStore {
			return NewInmemStore()
		},
		"badger": func() BlockStore {
			dir, err := os.MkdirTemp("", "hashlog-badger-")
			require.NoError(t, err)
			t.Cleanup(func() { os.RemoveAll(dir) })

			bs, err := NewBadgerStore(dir)
			require.NoError(t, err)
			t.Cleanup(func() { bs.Close() })

			return bs
		},
	}
}

func TestBlockStorePutGetRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, factory := range blockStoreFactories(t) {
		name, factory := name, factory
		t.Run(name, func(t *testing.T) {
			s := factory()

			d, err := s.Put(ctx, []byte("hello, hashlog"))
			require.NoError(t, err)
			require.True(t, d.IsValid())

			got, err := s.Get(ctx, d)
			require.NoError(t, err)
			require.Equal(t, []byte("hello, hashlog"), got)
		})
	}
}

func TestBlockStorePutIsIdempotent(t *testing.T) {
	ctx := context.Background()

	for name, factory := range blockStoreFactories(t) {
		name, factory := name, factory
		t.Run(name, func(t *testing.T) {
			s := factory()

			d1, err := s.Put(ctx, []byte("duplicate"))
			require.NoError(t, err)

			d2, err := s.Put(ctx, []byte("duplicate"))
			require.NoError(t, err)

			require.True(t, d1.Equal(d2))
		})
	}
}

func TestBlockStoreGetMissing(t *testing.T) {
	ctx := context.Background()

	for name, factory := range blockStoreFactories(t) {
		name, factory := name, factory
		t.Run(name, func(t *testing.T) {
			s := factory()

			d, err := digest.Sum([]byte("never stored"))
			require.NoError(t, err)

			_, err = s.Get(ctx, d)
			require.Error(t, err)
			require.True(t, common.Is(err, common.StoreError))
		})
	}
}
