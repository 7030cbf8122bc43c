// Package digest provides the content-address type shared by entries and
// logs: a wrapper around a CIDv0 value, computed from the canonical
// encoding of whatever was put into the block store.
//
// The canonical encoding used to compute a digest is JSON produced by
// ugorji/go/codec's JsonHandle with Canonical set, the same mechanism
// mosaicnetworks/babble uses in its Frame and RoundInfo serialization to
// get a stable byte representation for hashing.
package digest

import (
	"bytes"
	"crypto/sha256"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/ugorji/go/codec"
)

// Digest is the content-address of a serialized image, encoded as a
// CIDv0 (a SHA2-256 multihash under dag-protobuf codec). Its String
// form is the base58btc string spec.md calls the entry/log "digest" or
// "multihash".
type Digest struct {
	c cid.Cid
}

// Undef is the zero Digest. IsValid reports false for it.
var Undef = Digest{}

// IsValid reports whether d wraps a defined CID.
func (d Digest) IsValid() bool {
	return d.c.Defined()
}

// String returns the base58btc encoding of the digest, e.g.
// "Qmc5..." for a CIDv0.
func (d Digest) String() string {
	if !d.c.Defined() {
		return ""
	}
	return d.c.String()
}

// Equal reports whether two digests refer to the same content.
func (d Digest) Equal(other Digest) bool {
	return d.c.Equals(other.c)
}

// Bytes returns the raw multihash bytes of the digest.
func (d Digest) Bytes() []byte {
	return d.c.Hash()
}

// Parse decodes a base58btc digest string previously produced by String.
func Parse(s string) (Digest, error) {
	c, err := cid.Decode(s)
	if err != nil {
		return Digest{}, err
	}
	return Digest{c: c}, nil
}

// Sum computes the digest of a byte image the way the block store would
// address it: a SHA2-256 multihash wrapped in a CIDv0.
func Sum(image []byte) (Digest, error) {
	sum := sha256.Sum256(image)

	mhash, err := mh.Encode(sum[:], mh.SHA2_256)
	if err != nil {
		return Digest{}, err
	}

	return Digest{c: cid.NewCidV0(mhash)}, nil
}

// jsonHandle is the canonical JSON codec shared by every caller that needs
// a deterministic byte image to hash or persist. Canonical sorts map keys
// and avoids the whitespace and field-ordering variance of encoding/json,
// which is required for content-addressing to be reproducible across
// participants.
func jsonHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	return jh
}

// Encode returns the canonical JSON encoding of v.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, jsonHandle())
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses canonical (or plain) JSON bytes into v.
func Decode(data []byte, v interface{}) error {
	dec := codec.NewDecoderBytes(data, jsonHandle())
	return dec.Decode(v)
}
