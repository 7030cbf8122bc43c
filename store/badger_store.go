package store

import (
	"context"

	badger "github.com/dgraph-io/badger"

	"github.com/mosaicnetworks/hashlog/common"
	"github.com/mosaicnetworks/hashlog/digest"
)

// BadgerStore is a BlockStore backed by a Badger key-value database,
// adapted from mosaicnetworks/babble's src/hashgraph.BadgerStore. Unlike
// the teacher's version it has no in-memory cache tier and no
// consensus-specific key prefixes: every block is content-addressed and
// keyed directly by its digest string.
type BadgerStore struct {
	db   *badger.DB
	path string
}

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Dir = path
	opts.ValueDir = path
	opts.SyncWrites = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db, path: path}, nil
}

// Put implements BlockStore.
func (s *BadgerStore) Put(ctx context.Context, data []byte) (digest.Digest, error) {
	d, err := digest.Sum(data)
	if err != nil {
		return digest.Digest{}, common.NewStoreError(err)
	}

	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	if err := tx.Set([]byte(d.String()), data); err != nil {
		return digest.Digest{}, common.NewStoreError(err)
	}

	if err := tx.Commit(); err != nil {
		return digest.Digest{}, common.NewStoreError(err)
	}

	return d, nil
}

// Get implements BlockStore.
func (s *BadgerStore) Get(ctx context.Context, d digest.Digest) ([]byte, error) {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(d.String()))
		if err != nil {
			return err
		}

		return item.Value(func(value []byte) error {
			data = append([]byte(nil), value...)
			return nil
		})
	})

	if err != nil {
		if isKeyNotFound(err) {
			return nil, common.NewStoreError(&NotFoundError{Digest: d.String()})
		}
		return nil, common.NewStoreError(err)
	}

	return data, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// StorePath returns the filesystem path of the underlying database, in the
// style of mosaicnetworks/babble's Store.StorePath.
func (s *BadgerStore) StorePath() string {
	return s.path
}

func isKeyNotFound(err error) bool {
	return err == badger.ErrKeyNotFound
}
