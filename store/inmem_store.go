package store

import (
	"context"
	"sync"

	"github.com/mosaicnetworks/hashlog/common"
	"github.com/mosaicnetworks/hashlog/digest"
)

// InmemStore is a BlockStore backed by a guarded in-memory map. It never
// evicts, so it is meant for tests and short-lived processes such as
// cmd/hashlogd's default backend, not long-running deployments.
//
// The embedded sync.RWMutex mirrors the concurrency-safety pattern of
// mosaicnetworks/babble's src/net.InmemTransport: independent readers
// proceed concurrently, writers take an exclusive lock.
type InmemStore struct {
	sync.RWMutex
	blocks map[string][]byte
}

// NewInmemStore creates an empty InmemStore.
func NewInmemStore() *InmemStore {
	return &InmemStore{
		blocks: make(map[string][]byte),
	}
}

// Put implements BlockStore.
func (s *InmemStore) Put(ctx context.Context, data []byte) (digest.Digest, error) {
	d, err := digest.Sum(data)
	if err != nil {
		return digest.Digest{}, common.NewStoreError(err)
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	s.Lock()
	s.blocks[d.String()] = cp
	s.Unlock()

	return d, nil
}

// Get implements BlockStore.
func (s *InmemStore) Get(ctx context.Context, d digest.Digest) ([]byte, error) {
	s.RLock()
	data, ok := s.blocks[d.String()]
	s.RUnlock()

	if !ok {
		return nil, common.NewStoreError(&NotFoundError{Digest: d.String()})
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	return cp, nil
}

// Len returns the number of blocks currently held. Diagnostic only.
func (s *InmemStore) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.blocks)
}

// NotFoundError is returned (wrapped in a common.Error of kind
// common.StoreError) when a digest has no corresponding block.
type NotFoundError struct {
	Digest string
}

func (e *NotFoundError) Error() string {
	return "block not found: " + e.Digest
}
