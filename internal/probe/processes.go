package probe

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

// processRow is one parsed /proc/<pid> entry: its numeric pid and exe
// symlink target.
type processRow struct {
	pid    uint64
	target string
}

// parseProcEntries filters names (as returned by os.ReadDir("/proc")) down
// to numerically-named entries, resolving each one's exe symlink via
// readExe. An entry readExe can't resolve — typical for kernel threads or
// processes we can't inspect — is skipped, not errored (spec.md §7).
func parseProcEntries(names []string, readExe func(pid string) (string, error)) []processRow {
	var rows []processRow
	for _, name := range names {
		pid, err := strconv.ParseUint(name, 10, 32)
		if err != nil {
			continue
		}
		target, err := readExe(name)
		if err != nil {
			continue
		}
		rows = append(rows, processRow{pid: pid, target: target})
	}
	return rows
}

// Processes populates hrSWRunTable from the numerically-named directories
// under /proc (spec.md §4.3 "Processes").
func Processes() Func {
	return processesFromRoot("/")
}

// processesFromRoot is Processes with the filesystem root overridable, so
// tests can point it at a fixture tree instead of the real /proc.
func processesFromRoot(root string) Func {
	return func(s *store.Store) error {
		procDir := filepath.Join(root, "proc")
		entries, err := os.ReadDir(procDir)
		if err != nil {
			return nil
		}

		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		rows := parseProcEntries(names, func(pid string) (string, error) {
			return os.Readlink(filepath.Join(procDir, pid, "exe"))
		})

		base := HrSWRunBase
		for _, row := range rows {
			s.Insert(oid.JoinInstance(uint32(row.pid), base, "1"), value.NewInteger(int64(row.pid)))
			s.Insert(oid.JoinInstance(uint32(row.pid), base, "2"), value.NewOctetString(filepath.Base(row.target)))
			s.Insert(oid.JoinInstance(uint32(row.pid), base, "4"), value.NewOctetString(row.target))
		}
		return nil
	}
}
