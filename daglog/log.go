// Package daglog implements the Log value type and its CRDT operations
// (spec.md sections 4.4 and 4.5): Create, Append, Join, JoinAll, Expand,
// FromEntry, FromMultihash, ToMultihash. It plays the role
// mosaicnetworks/babble's src/hashgraph.Hashgraph plays for events,
// except a Log is an immutable value rather than a long-lived stateful
// aggregate: every operation returns a fresh *Log and never mutates its
// inputs.
package daglog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mosaicnetworks/hashlog/digest"
	"github.com/mosaicnetworks/hashlog/entry"
)

// Log is a deterministically ordered view over a set of entries plus
// their head frontier. Log values are immutable: every Log-producing
// operation in this package returns a new value.
type Log struct {
	id    string
	items []*entry.Entry
	heads []digest.Digest
}

// ID returns the chain identifier this log is primarily associated
// with.
func (l *Log) ID() string {
	return l.id
}

// Items returns the log's entries in the deterministic total order of
// spec.md section 4.3. The caller must not mutate the returned slice.
func (l *Log) Items() []*entry.Entry {
	return l.items
}

// Heads returns the digests of entries in Items() that are not
// referenced by any other entry's Next(), ascending per spec.md section
// 4.2. The caller must not mutate the returned slice.
func (l *Log) Heads() []digest.Digest {
	return l.heads
}

// Get returns the entry in Items() with the given hash, or nil if none
// matches.
func (l *Log) Get(h digest.Digest) *entry.Entry {
	for _, e := range l.items {
		if e.Hash().Equal(h) {
			return e
		}
	}
	return nil
}

// logImage is the on-store representation of a Log: {id, heads}.
type logImage struct {
	ID    string   `codec:"id"`
	Heads []string `codec:"heads"`
}

// JSON returns the log's on-store image.
func (l *Log) JSON() ([]byte, error) {
	heads := make([]string, len(l.heads))
	for i, h := range l.heads {
		heads[i] = h.String()
	}
	return digest.Encode(logImage{ID: l.id, Heads: heads})
}

// Bytes is an alias for JSON: the on-store image of a whole log.
func (l *Log) Bytes() ([]byte, error) {
	return l.JSON()
}

// String renders Items() in reverse, indenting each entry by how many
// lines have already been rendered above it: the first (most recent)
// entry has no connector, and each following line adds a "└─" preceded
// by two spaces for every rendered line above it except the first, per
// spec.md section 4.4.
func (l *Log) String() string {
	var b strings.Builder

	pos := 0
	for i := len(l.items) - 1; i >= 0; i-- {
		e := l.items[i]

		if pos > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", pos-1))
			b.WriteString("└─")
		}

		b.WriteString(fmt.Sprint(e.Payload()))
		pos++
	}

	return b.String()
}

// Diff returns the entries present in l but absent from other, compared
// by hash. It performs no I/O and does not participate in the CRDT
// operations; it is a read-only convenience for diagnostics and tests.
func (l *Log) Diff(other *Log) []*entry.Entry {
	present := make(map[string]bool, len(other.items))
	for _, e := range other.items {
		present[e.Hash().String()] = true
	}

	diff := make([]*entry.Entry, 0)
	for _, e := range l.items {
		if !present[e.Hash().String()] {
			diff = append(diff, e)
		}
	}
	return diff
}

// newID returns a fresh unique log identifier, per spec.md section 4.5's
// "id defaults to a fresh unique value".
func newID() string {
	return uuid.NewString()
}
