// Package walk implements the GetNext walk algorithm: given a store and a
// start OID, produce the next-in-order varbinds to return to the client
// (spec.md §4.4).
package walk

import (
	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

// BulkCap is the maximum number of varbinds a single walk returns.
const BulkCap = 100

// Varbind is one (OID, Value) pair in a walk's result.
type Varbind struct {
	OID   oid.OID
	Value value.Value
}

// Next runs the GetNext algorithm starting from start against s, honoring
// subtree-anchoring, not-found backoff and the bulk cap (spec.md §4.4).
//
// 1. Start-OID normalization / subtree anchor: find the earliest entry (in
//    ascending order) that descends from start. If none does, trim start's
//    final arc and retry — this is the GetNext recovery for queries that
//    target a non-existent exact node (a common snmptable idiom) — down to
//    the empty OID, which every entry trivially descends from, so the loop
//    always terminates with an anchor on a non-empty store.
// 2. If the anchor entry found this way equals the original start exactly,
//    skip it — GetNext returns the *next* lexicographic node, not the same
//    one. Emit every successor entry from there, up to BulkCap.
// 3. If nothing was produced (empty store), emit a single
//    (0.0, endOfMibView) varbind.
func Next(s *store.Store, start oid.OID) []Varbind {
	entries := s.All()

	anchor := start
	idx := s.Floor(anchor)
	for (idx >= len(entries) || !entries[idx].OID.IsSubtreeOf(anchor)) && anchor.Len() > 0 {
		anchor = anchor.Truncated()
		idx = s.Floor(anchor)
	}

	result := make([]Varbind, 0, BulkCap)
	for idx < len(entries) && len(result) < BulkCap {
		e := entries[idx]
		idx++
		if e.OID.Equal(start) {
			continue
		}
		result = append(result, Varbind{OID: e.OID, Value: e.Value})
	}

	if len(result) == 0 {
		result = append(result, Varbind{OID: oid.New("0.0"), Value: value.NewEndOfMibView()})
	}
	return result
}
