// Package store defines the contract for the content-addressed block
// store that hashlog depends on but does not implement the semantics
// of: put bytes, get them back by their digest. This mirrors the
// separation mosaicnetworks/babble draws between the Hashgraph and its
// pluggable Store interface (src/hashgraph/store.go), except here the
// store is a dumb, opaque byte-blob backend rather than a
// consensus-aware one.
package store

import (
	"context"

	"github.com/mosaicnetworks/hashlog/digest"
)

// BlockStore is the external collaborator spec.md section 6 describes:
// content-addressed storage of opaque byte blobs.
type BlockStore interface {
	// Put stores bytes and returns their digest.
	Put(ctx context.Context, data []byte) (digest.Digest, error)
	// Get retrieves bytes previously stored under d. It returns an error
	// if the block is not available within ctx's deadline.
	Get(ctx context.Context, d digest.Digest) ([]byte, error)
}
