package probe

import (
	"errors"
	"testing"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

func TestRefreshRunsEveryProbeAndReportsOnlyFailuresToOnError(t *testing.T) {
	ok := Descriptor{Name: "ok", Run: func(s *store.Store) error {
		s.Insert(oid.New("1.2.3"), value.NewInteger(1))
		return nil
	}}
	failing := Descriptor{Name: "failing", Run: func(s *store.Store) error {
		return errors.New("boom")
	}}

	reg := NewRegistry(ok, failing)

	var reported []string
	s := reg.Refresh(func(name string, err error) {
		reported = append(reported, name)
	})

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if len(reported) != 1 || reported[0] != "failing" {
		t.Errorf("reported = %v, want [failing]", reported)
	}
}

func TestRefreshWithNilOnErrorDoesNotPanic(t *testing.T) {
	failing := Descriptor{Name: "failing", Run: func(s *store.Store) error {
		return errors.New("boom")
	}}
	reg := NewRegistry(failing)
	reg.Refresh(nil)
}

func TestNames(t *testing.T) {
	reg := NewRegistry(
		Descriptor{Name: "a", Run: func(s *store.Store) error { return nil }},
		Descriptor{Name: "b", Run: func(s *store.Store) error { return nil }},
	)
	names := reg.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}
