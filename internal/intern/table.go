// Package intern implements the writer-side identifier table: a mapping from
// (category, payload) keys to dense indices assigned in first-write order.
package intern

import (
	"bytes"

	"github.com/hdlio/hif/format"
	"github.com/hdlio/hif/internal/hash"
	"github.com/hdlio/hif/section"
)

type entry struct {
	cat  format.IDCat
	data []byte
}

// Table interns (category, payload) pairs into dense indices starting at 0.
// Index 31 is never assigned; both writer and reader skip it so positions in
// the identifier file stay aligned with indices.
//
// Keys are bucketed by xxHash64 with exact-match chains, so two identical
// payloads under different categories receive different indices and hash
// collisions never alias.
type Table struct {
	buckets map[uint64][]uint32
	entries []entry
}

// New creates an empty identifier table.
func New() *Table {
	return &Table{
		buckets: make(map[uint64][]uint32),
	}
}

// Intern returns the index of the (cat, data) pair, assigning the next dense
// index on first occurrence. fresh is true when the pair was not interned
// before; the caller then emits the identifier record.
//
// The payload is copied on first insertion so later mutation of the caller's
// slice cannot corrupt the table.
func (t *Table) Intern(cat format.IDCat, data []byte) (index uint32, fresh bool) {
	key := hash.ID(cat, data)
	for _, idx := range t.buckets[key] {
		e := t.entries[idx]
		if e.cat == cat && bytes.Equal(e.data, data) {
			return idx, false
		}
	}

	if len(t.entries) == section.ReservedRefIndex {
		// Burn the reserved slot; it has no record and no bucket entry.
		t.entries = append(t.entries, entry{})
	}

	index = uint32(len(t.entries))
	owned := append([]byte(nil), data...)
	t.entries = append(t.entries, entry{cat: cat, data: owned})
	t.buckets[key] = append(t.buckets[key], index)

	return index, true
}

// Len returns the number of interned identifiers, counting the reserved slot
// once it has been skipped.
func (t *Table) Len() int {
	return len(t.entries)
}
