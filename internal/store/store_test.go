package store

import (
	"testing"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/value"
)

func TestInsertOrdersNumerically(t *testing.T) {
	s := New()
	s.Insert(oid.New("1.3.6.1.2.1.1.10.0"), value.NewInteger(10))
	s.Insert(oid.New("1.3.6.1.2.1.1.2.0"), value.NewInteger(2))
	s.Insert(oid.New("1.3.6.1.2.1.1.20.0"), value.NewInteger(20))
	s.Finalize()

	entries := s.All()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []string{"1.3.6.1.2.1.1.2.0", "1.3.6.1.2.1.1.10.0", "1.3.6.1.2.1.1.20.0"}
	for i, e := range entries {
		if e.OID.String() != want[i] {
			t.Fatalf("entries[%d] = %q, want %q", i, e.OID.String(), want[i])
		}
	}
}

func TestInsertReplaces(t *testing.T) {
	s := New()
	o := oid.New("1.3.6.1.2.1.1.5.0")
	s.Insert(o, value.NewOctetString("first"))
	s.Insert(o, value.NewOctetString("second"))
	s.Finalize()

	if s.Len() != 1 {
		t.Fatalf("got %d entries, want 1", s.Len())
	}
	v, ok := s.Get(o)
	if !ok || v.String() != "second" {
		t.Fatalf("Get() = %v, %v, want second, true", v, ok)
	}
}

func TestGetMissing(t *testing.T) {
	s := New()
	s.Finalize()
	if _, ok := s.Get(oid.New("1.2.3")); ok {
		t.Fatalf("expected miss on empty store")
	}
}

func TestFloor(t *testing.T) {
	s := New()
	s.Insert(oid.New("1.3.6.1.1.0"), value.NewInteger(1))
	s.Insert(oid.New("1.3.6.1.3.0"), value.NewInteger(3))
	s.Finalize()

	idx := s.Floor(oid.New("1.3.6.1.2.0"))
	if idx != 1 || s.All()[idx].OID.String() != "1.3.6.1.3.0" {
		t.Fatalf("Floor returned wrong index %d", idx)
	}
}
