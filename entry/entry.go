// Package entry implements the immutable Merkle-DAG record at the heart
// of hashlog, along with the pure, I/O-free operations over collections
// of entries (finding heads/tails/parents, and the deterministic total
// sort). It plays the role mosaicnetworks/babble's src/hashgraph.Event
// plays in a Hashgraph: the fundamental unit that everything else is
// built from.
package entry

import (
	"context"

	"github.com/mosaicnetworks/hashlog/common"
	"github.com/mosaicnetworks/hashlog/digest"
	"github.com/mosaicnetworks/hashlog/store"
)

// image is the on-store representation of an Entry: {id, seq, payload,
// next}. Field order and names are fixed so the canonical JSON encoding
// in the digest package is reproducible across participants, the same
// requirement that drives mosaicnetworks/babble's EventBody.Marshal.
type image struct {
	ID      string   `codec:"id"`
	Seq     int      `codec:"seq"`
	Payload any      `codec:"payload"`
	Next    []string `codec:"next"`
}

// Entry is an immutable record in the DAG. Two entries compare equal iff
// their Hash is equal.
type Entry struct {
	id      string
	seq     int
	payload any
	next    []digest.Digest
	hash    digest.Digest
}

// ID returns the chain identifier this entry belongs to.
func (e *Entry) ID() string { return e.id }

// Seq returns the entry's sequence number within its chain.
func (e *Entry) Seq() int { return e.seq }

// Payload returns the entry's payload.
func (e *Entry) Payload() any { return e.payload }

// Next returns the digests of the entry's immediate parents (the heads
// at the moment of its creation). The caller must not mutate the
// returned slice.
func (e *Entry) Next() []digest.Digest { return e.next }

// Hash returns the entry's content-address, populated when it was
// created or fetched.
func (e *Entry) Hash() digest.Digest { return e.hash }

// HasChild reports whether b is an immediate parent reference of a,
// i.e. b.Hash() appears in a.Next(). Named after the predicate in
// spec.md section 4.1; note the name describes the structural test,
// not a literal child/parent assertion about which entry came first.
func HasChild(a, b *Entry) bool {
	for _, n := range a.next {
		if n.Equal(b.hash) {
			return true
		}
	}
	return false
}

// Equal reports whether a and b have the same hash.
func Equal(a, b *Entry) bool {
	return a.hash.Equal(b.hash)
}

// Create validates its arguments, writes the canonical image to store,
// and returns a new Entry with its Hash populated. next may be nil or
// empty.
func Create(ctx context.Context, s store.BlockStore, id string, seq int, payload any, next []digest.Digest) (*Entry, error) {
	if s == nil {
		return nil, common.NewStoreNotDefined()
	}
	if id == "" {
		return nil, common.NewInvalidArgument("id must not be empty")
	}
	if seq < 0 {
		return nil, common.NewInvalidArgument("seq must be non-negative")
	}
	if payload == nil {
		return nil, common.NewInvalidArgument("payload must not be nil")
	}

	normalized := normalizeNext(next)

	img := image{
		ID:      id,
		Seq:     seq,
		Payload: payload,
		Next:    digestStrings(normalized),
	}

	raw, err := digest.Encode(img)
	if err != nil {
		return nil, common.NewInvalidArgument("payload is not serializable: " + err.Error())
	}

	d, err := s.Put(ctx, raw)
	if err != nil {
		return nil, common.NewStoreError(err)
	}

	return &Entry{
		id:      id,
		seq:     seq,
		payload: payload,
		next:    normalized,
		hash:    d,
	}, nil
}

// FromHash fetches the bytes at h and parses them as an Entry image.
func FromHash(ctx context.Context, s store.BlockStore, h digest.Digest) (*Entry, error) {
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

	var img image
	if err := digest.Decode(raw, &img); err != nil {
		return nil, common.NewParseError(h.String(), err)
	}

	next := make([]digest.Digest, 0, len(img.Next))
	for _, s := range img.Next {
		d, err := digest.Parse(s)
		if err != nil {
			return nil, common.NewParseError(h.String(), err)
		}
		next = append(next, d)
	}

	return &Entry{
		id:      img.ID,
		seq:     img.Seq,
		payload: img.Payload,
		next:    next,
		hash:    h,
	}, nil
}

// normalizeNext strips nil/invalid digests out of next, preserving order.
func normalizeNext(next []digest.Digest) []digest.Digest {
	out := make([]digest.Digest, 0, len(next))
	for _, d := range next {
		if d.IsValid() {
			out = append(out, d)
		}
	}
	return out
}

func digestStrings(ds []digest.Digest) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}
