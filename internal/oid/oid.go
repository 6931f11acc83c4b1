// Package oid implements the SNMP Object Identifier: an ordered sequence of
// unsigned 32-bit arcs that forms the key type of the agent's value store.
package oid

import (
	"fmt"
	"strconv"
	"strings"
)

// OID is an immutable, ordered identifier. Equality and ordering are defined
// only on the arc sequence; the dotted string is a display-only cache and
// must never be used for comparison (string order diverges from numeric arc
// order once an arc reaches two digits, e.g. "1.10" vs "1.2").
type OID struct {
	arcs []uint32
	str  string
}

// New parses a dotted-decimal string ("1.3.6.1.2.1.1.3.0") into an OID.
// A malformed string is a programmer error and panics, matching the
// source behavior of treating bad OID literals as a bug, not runtime input.
func New(dotted string) OID {
	parts := strings.Split(dotted, ".")
	arcs := make([]uint32, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			panic(fmt.Sprintf("oid: invalid arc %q in %q: %v", p, dotted, err))
		}
		arcs[i] = uint32(n)
	}
	return fromArcs(arcs)
}

// FromArcs builds an OID from an already-parsed arc sequence.
func FromArcs(arcs []uint32) OID {
	cp := make([]uint32, len(arcs))
	copy(cp, arcs)
	return fromArcs(cp)
}

func fromArcs(arcs []uint32) OID {
	return OID{arcs: arcs, str: joinArcs(arcs)}
}

// Join concatenates dotted-decimal fragments with "." and parses the result.
// Used by probes to build base+subcolumn OIDs, e.g. Join(base, "1.0").
func Join(parts ...string) OID {
	return New(strings.Join(parts, "."))
}

// JoinInstance joins fragments with "." and appends a trailing numeric
// instance index, the convention every table-row probe uses to address a
// row by its 1-based (or otherwise numeric) index.
func JoinInstance(instance uint32, parts ...string) OID {
	return New(fmt.Sprintf("%s.%d", strings.Join(parts, "."), instance))
}

// Arcs returns the underlying arc sequence. Callers must not mutate it.
func (o OID) Arcs() []uint32 {
	return o.arcs
}

// String returns the dotted-decimal form.
func (o OID) String() string {
	return o.str
}

// Len returns the number of arcs.
func (o OID) Len() int {
	return len(o.arcs)
}

// Equal reports arc-sequence equality.
func (o OID) Equal(other OID) bool {
	if len(o.arcs) != len(other.arcs) {
		return false
	}
	for i, a := range o.arcs {
		if a != other.arcs[i] {
			return false
		}
	}
	return true
}

// Less implements strict lexicographic arc ordering: compare arc-by-arc;
// when every shared arc matches, the shorter sequence is less.
func (o OID) Less(other OID) bool {
	n := len(o.arcs)
	if len(other.arcs) < n {
		n = len(other.arcs)
	}
	for i := 0; i < n; i++ {
		if o.arcs[i] != other.arcs[i] {
			return o.arcs[i] < other.arcs[i]
		}
	}
	return len(o.arcs) < len(other.arcs)
}

// Truncated returns a copy of o with its final arc removed. Calling
// Truncated on a single-arc OID returns the empty OID (Len() == 0), which
// callers use as the terminal case of GetNext's start-OID backoff.
func (o OID) Truncated() OID {
	if len(o.arcs) == 0 {
		return o
	}
	return fromArcs(append([]uint32(nil), o.arcs[:len(o.arcs)-1]...))
}

// IsSubtreeOf reports whether ancestor's arcs are a proper-or-equal prefix
// of o's arcs. Comparison is on arcs, not on the string form, so that
// "1.10" is never mistaken as being under ancestor "1.1".
func (o OID) IsSubtreeOf(ancestor OID) bool {
	if len(ancestor.arcs) > len(o.arcs) {
		return false
	}
	for i, a := range ancestor.arcs {
		if o.arcs[i] != a {
			return false
		}
	}
	return true
}

// AsciifyPart converts name into a dotted sequence of decimal ASCII
// codepoints, one per byte — the NET-SNMP extend MIB convention for
// embedding a human-readable name inside an OID subtree.
func AsciifyPart(name string) string {
	parts := make([]string, len(name))
	for i := 0; i < len(name); i++ {
		parts[i] = strconv.Itoa(int(name[i]))
	}
	return strings.Join(parts, ".")
}

func joinArcs(arcs []uint32) string {
	parts := make([]string, len(arcs))
	for i, a := range arcs {
		parts[i] = strconv.FormatUint(uint64(a), 10)
	}
	return strings.Join(parts, ".")
}
