package probe

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
)

func cStringFixture(s string) [65]byte {
	var b [65]byte
	copy(b[:], s)
	return b
}

func TestCString(t *testing.T) {
	b := cStringFixture("hostname")
	if got := cString(b[:]); got != "hostname" {
		t.Errorf("cString = %q, want hostname", got)
	}
}

func TestSysDescr(t *testing.T) {
	uts := unix.Utsname{
		Sysname:  cStringFixture("Linux"),
		Nodename: cStringFixture("suntd-host"),
		Release:  cStringFixture("6.1.0"),
		Version:  cStringFixture("#1 SMP"),
		Machine:  cStringFixture("x86_64"),
	}
	want := "Linux suntd-host 6.1.0 #1 SMP x86_64"
	if got := sysDescr(uts); got != want {
		t.Errorf("sysDescr = %q, want %q", got, want)
	}
}

func TestSystemFromRootMultipliesUptimeBy100(t *testing.T) {
	root := t.TempDir()
	writeFixtureFile(t, root, "proc/uptime", "12345.67 54321.00\n")

	s := store.New()
	cfg := SystemConfig{Contact: "ops@example.com", Location: "rack 4"}
	if err := systemFromRoot(cfg, root)(s); err != nil {
		t.Fatalf("systemFromRoot: %v", err)
	}
	s.Finalize()

	got, ok := s.Get(oid.Join(SystemBase, "3.0"))
	if !ok {
		t.Fatal("missing sysUpTime")
	}
	if got.String() != "1234500" {
		t.Errorf("sysUpTime = %q, want 1234500 (12345 seconds * 100)", got.String())
	}

	contact, ok := s.Get(oid.Join(SystemBase, "4.0"))
	if !ok || contact.String() != "ops@example.com" {
		t.Errorf("sysContact = %v, ok=%v", contact, ok)
	}
	location, ok := s.Get(oid.Join(SystemBase, "6.0"))
	if !ok || location.String() != "rack 4" {
		t.Errorf("sysLocation = %v, ok=%v", location, ok)
	}
}

func TestSystemFromRootMissingUptimeSkipsScalar(t *testing.T) {
	root := t.TempDir()

	s := store.New()
	if err := systemFromRoot(SystemConfig{}, root)(s); err != nil {
		t.Fatalf("systemFromRoot: %v", err)
	}
	s.Finalize()

	if _, ok := s.Get(oid.Join(SystemBase, "3.0")); ok {
		t.Error("sysUpTime should be absent when /proc/uptime can't be read")
	}
}
