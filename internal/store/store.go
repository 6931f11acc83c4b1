// Package store implements the ordered OID→Value mapping that probes fill
// on each refresh and the walk engine reads on every request.
package store

import (
	"sort"

	radix "github.com/armon/go-radix"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/value"
)

// Entry is one row of the store in iteration order.
type Entry struct {
	OID   oid.OID
	Value value.Value
}

// Store is an ordered mapping from OID to Value. Keys are unique;
// re-insertion replaces. Iteration order equals OID lexicographic order
// (spec.md §3). A Store is built by one refresh cycle via repeated Insert
// calls followed by a single Finalize, then treated as immutable for the
// rest of its life — see internal/agent for how the agent loop swaps a
// *Store pointer instead of locking individual entries, mirroring the
// teacher's LoadOIDDatabase→SortOIDs two-phase construction.
//
// Point lookups (Get) go through a radix tree keyed on the dotted string
// form, grounded on the teacher's internal/store/database.go. A plain radix
// tree orders its keys byte-lexicographically, which is wrong for OIDs once
// an arc reaches two digits (spec.md §9) — exactly the bug the teacher's own
// database.go works around by keeping a second, separately-sorted slice for
// GetNext traversal. Store does the same: the tree answers Get, the sorted
// slice answers ordered iteration and the walk engine's subtree scan.
type Store struct {
	entries []Entry
	byOID   map[string]int // build-time dedup index; nil once Finalize has run
	tree    *radix.Tree    // populated by Finalize; oid string -> index in entries
}

// New returns an empty, buildable store.
func New() *Store {
	return &Store{byOID: make(map[string]int)}
}

// Insert adds or replaces the value at o. Must be called before Finalize.
func (s *Store) Insert(o oid.OID, v value.Value) {
	if idx, ok := s.byOID[o.String()]; ok {
		s.entries[idx].Value = v
		return
	}
	s.byOID[o.String()] = len(s.entries)
	s.entries = append(s.entries, Entry{OID: o, Value: v})
}

// Finalize sorts the accumulated entries into ascending OID order and
// builds the Get index. A Store must be finalized before it is handed to
// the walk engine or swapped into the agent loop.
func (s *Store) Finalize() {
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].OID.Less(s.entries[j].OID)
	})

	tree := radix.New()
	for i, e := range s.entries {
		tree.Insert(e.OID.String(), i)
	}
	s.tree = tree
	s.byOID = nil
}

// Get returns the value stored at o, if any.
func (s *Store) Get(o oid.OID) (value.Value, bool) {
	if s.tree != nil {
		if idx, ok := s.tree.Get(o.String()); ok {
			return s.entries[idx.(int)].Value, true
		}
		return value.Value{}, false
	}
	if idx, ok := s.byOID[o.String()]; ok {
		return s.entries[idx].Value, true
	}
	return value.Value{}, false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// All returns the store's entries in ascending OID order. The returned
// slice must not be mutated by the caller.
func (s *Store) All() []Entry {
	return s.entries
}

// Floor returns the index of the first entry not less than o — the
// insertion point for o in the sorted entries. The walk engine uses this
// to anchor a scan with a binary search instead of a linear pass.
func (s *Store) Floor(o oid.OID) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].OID.Less(o)
	})
}
