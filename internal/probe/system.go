package probe

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

// SystemConfig supplies the literals spec.md §4.3 calls "static literal"
// for sysContact/sysLocation. Recovered from original_source/src/mib_sys.rs,
// which hardcodes "sunt v0.0.1" and "the cloud, probably"; SPEC_FULL.md
// makes these configurable via CLI flags with those values as defaults.
type SystemConfig struct {
	Contact  string
	Location string
}

// sysDescr composes the sysDescr scalar from a uname(2) result, in the
// same "sysname nodename release version machine" order `uname -a` prints.
func sysDescr(uts unix.Utsname) string {
	return fmt.Sprintf("%s %s %s %s %s",
		cString(uts.Sysname[:]), cString(uts.Nodename[:]),
		cString(uts.Release[:]), cString(uts.Version[:]), cString(uts.Machine[:]))
}

// System inserts the sysDescr/sysUpTime/sysContact/sysName/sysLocation
// scalars under base (spec.md §4.3 "System").
func System(cfg SystemConfig) Func {
	return systemFromRoot(cfg, "/")
}

// systemFromRoot is System with /proc/uptime's root overridable, so tests
// can point it at a fixture file. uname(2) always reports the real host —
// there is no per-process override for it on Linux, so it has no fixture
// path and is left untested at the unit level.
func systemFromRoot(cfg SystemConfig, root string) Func {
	return func(s *store.Store) error {
		base := oid.New(SystemBase)

		var uts unix.Utsname
		if err := unix.Uname(&uts); err == nil {
			s.Insert(oid.Join(base.String(), "1.0"), value.NewOctetString(sysDescr(uts)))
			s.Insert(oid.Join(base.String(), "5.0"), value.NewOctetString(cString(uts.Nodename[:])))
		}

		s.Insert(oid.Join(base.String(), "4.0"), value.NewOctetString(cfg.Contact))
		s.Insert(oid.Join(base.String(), "6.0"), value.NewOctetString(cfg.Location))

		// /proc/uptime holds "seconds.hundredths"; sysUpTime is Timeticks
		// (hundredths of a second), so the integer seconds read here must be
		// multiplied by 100 (spec.md §9 open question, resolved as a bug fix).
		if seconds, ok := value.ReadFirstU32(filepath.Join(root, "proc/uptime")); ok {
			s.Insert(oid.Join(base.String(), "3.0"), value.NewTimeticks(seconds*100))
		}

		return nil
	}
}

// cString converts a NUL-padded byte array (as returned by unix.Uname) into
// a Go string, trimming at the first NUL.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
