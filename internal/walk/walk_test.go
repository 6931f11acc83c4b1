package walk

import (
	"testing"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/probe"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

func buildStore(t *testing.T, oids ...string) *store.Store {
	t.Helper()
	s := store.New()
	for _, o := range oids {
		s.Insert(oid.New(o), value.NewOctetString(o))
	}
	s.Finalize()
	return s
}

func TestNextEmptyStoreReturnsEndOfMibView(t *testing.T) {
	s := store.New()
	s.Finalize()

	got := Next(s, oid.New("1"))
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if !got[0].OID.Equal(oid.New("0.0")) {
		t.Errorf("OID = %s, want 0.0", got[0].OID)
	}
	if got[0].Value.Kind() != value.EndOfMibView {
		t.Errorf("Kind = %v, want EndOfMibView", got[0].Value.Kind())
	}
}

func TestNextSysNameLookup(t *testing.T) {
	base := probe.SystemBase
	s := buildStore(t,
		base+".1.0", // sysDescr
		base+".3.0", // sysUpTime
		base+".4.0", // sysContact
		base+".5.0", // sysName
		base+".6.0", // sysLocation
	)

	got := Next(s, oid.New(base+".5"))
	if len(got) == 0 {
		t.Fatal("got no varbinds")
	}
	want := oid.New(base + ".5.0")
	if !got[0].OID.Equal(want) {
		t.Errorf("first OID = %s, want %s", got[0].OID, want)
	}
}

func TestNextNonExistentStartOIDBackoff(t *testing.T) {
	base := probe.SystemBase
	s := buildStore(t, base+".1.0")

	got := Next(s, oid.New(base+".99"))
	if len(got) == 0 {
		t.Fatal("got no varbinds")
	}
	want := oid.New(base + ".1.0")
	if !got[0].OID.Equal(want) {
		t.Errorf("first OID = %s, want %s", got[0].OID, want)
	}
}

func TestNextSkipsExactStartMatch(t *testing.T) {
	base := probe.SystemBase
	s := buildStore(t,
		base+".1.0",
		base+".5.0",
		"1.3.6.1.2.1.2.2.1.1.1",
	)

	got := Next(s, oid.New(base+".5.0"))
	if len(got) == 0 {
		t.Fatal("got no varbinds")
	}
	want := oid.New("1.3.6.1.2.1.2.2.1.1.1")
	if !got[0].OID.Equal(want) {
		t.Errorf("first OID = %s, want %s (exact-match entry must be skipped)", got[0].OID, want)
	}
}

func TestNextBulkCap(t *testing.T) {
	base := probe.DiskIOBase
	oids := make([]string, 0, 250)
	for i := 1; i <= 250; i++ {
		oids = append(oids, oid.JoinInstance(uint32(i), base, "1").String())
	}
	s := buildStore(t, oids...)

	got := Next(s, oid.New(base))
	if len(got) != BulkCap {
		t.Fatalf("len(got) = %d, want %d", len(got), BulkCap)
	}
	for i, vb := range got {
		want := oid.JoinInstance(uint32(i+1), base, "1")
		if !vb.OID.Equal(want) {
			t.Errorf("got[%d].OID = %s, want %s", i, vb.OID, want)
		}
	}
}

func TestNextOutputStrictlyGreaterThanStart(t *testing.T) {
	s := buildStore(t,
		"1.3.6.1.2.1.1.1.0",
		"1.3.6.1.2.1.1.5.0",
		"1.3.6.1.2.1.2.2.1.1.1",
	)
	start := oid.New("1.3.6.1.2.1.1.1.0")

	got := Next(s, start)
	for _, vb := range got {
		if !start.Less(vb.OID) {
			t.Errorf("varbind %s is not strictly greater than start %s", vb.OID, start)
		}
	}
}

func TestNextSubtreeEndDoesNotStopEarly(t *testing.T) {
	// After a subtree anchor is established, every remaining entry is
	// emitted in order regardless of whether it stays within that subtree.
	s := buildStore(t,
		"1.3.6.1.2.1.1.1.0",
		"1.3.6.1.2.1.1.5.0",
		"1.3.6.1.2.1.2.2.1.1.1",
	)

	got := Next(s, oid.New("1.3.6.1.2.1.1"))
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if !got[2].OID.Equal(oid.New("1.3.6.1.2.1.2.2.1.1.1")) {
		t.Errorf("got[2].OID = %s, want the ifTable entry outside the system subtree", got[2].OID)
	}
}
