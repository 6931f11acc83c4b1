package probe

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

// diskRow is one parsed /proc/diskstats line, before alias resolution.
type diskRow struct {
	device               string
	rdIOs, wrIOs         uint64
	rdSectors, wrSectors uint64
}

// parseDiskstatsLine parses one /proc/diskstats line. It reports ok=false
// for loop devices, short lines, and unparseable counter fields — the same
// rows the original inline loop skipped.
func parseDiskstatsLine(line string) (diskRow, bool) {
	fields := strings.Fields(line)
	if len(fields) < 10 {
		return diskRow{}, false
	}
	device := fields[2]
	if strings.HasPrefix(device, "loop") {
		return diskRow{}, false
	}

	// Kernel layout after major/minor/name: reads completed, reads merged,
	// sectors read, ms reading, writes completed, writes merged, sectors
	// written, ...
	rdIOs, err1 := strconv.ParseUint(fields[3], 10, 32)
	wrIOs, err2 := strconv.ParseUint(fields[7], 10, 32)
	rdSectors, err3 := strconv.ParseUint(fields[5], 10, 64)
	wrSectors, err4 := strconv.ParseUint(fields[9], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return diskRow{}, false
	}

	return diskRow{device: device, rdIOs: rdIOs, wrIOs: wrIOs, rdSectors: rdSectors, wrSectors: wrSectors}, true
}

// parseDiskstats parses every line of r in order, dropping rows
// parseDiskstatsLine rejects.
func parseDiskstats(r io.Reader) ([]diskRow, error) {
	var rows []diskRow
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if row, ok := parseDiskstatsLine(scanner.Text()); ok {
			rows = append(rows, row)
		}
	}
	return rows, scanner.Err()
}

// Disks populates UCD-DISKIO::diskIOTable from /proc/diskstats
// (spec.md §4.3 "Disks").
func Disks() Func {
	return disksFromRoot("/")
}

// disksFromRoot is Disks with the filesystem root overridable, so tests can
// point it at a fixture tree instead of the real /proc and /dev.
func disksFromRoot(root string) Func {
	return func(s *store.Store) error {
		f, err := os.Open(filepath.Join(root, "proc/diskstats"))
		if err != nil {
			// Absence of /proc/diskstats skips this probe's rows; not fatal
			// to the refresh (spec.md §7).
			return nil
		}
		defer f.Close()

		rows, err := parseDiskstats(f)
		if err != nil {
			return err
		}

		base := DiskIOBase
		idx := uint32(1)
		for _, row := range rows {
			alias := row.device
			if strings.HasPrefix(row.device, "dm-") {
				mapperDir := filepath.Join(root, "dev/mapper")
				devPath := filepath.Join(root, "dev", row.device)
				if a := canonicalizeDMNameIn(mapperDir, devPath); a != "" {
					alias = a
				}
			}

			readBytes := row.rdSectors * 512
			writtenBytes := row.wrSectors * 512

			s.Insert(oid.JoinInstance(idx, base, "1"), value.NewInteger(int64(idx)))
			s.Insert(oid.JoinInstance(idx, base, "2"), value.NewOctetString(alias))
			// diskIONRead/diskIONWritten keep only the low 32 bits of the 64-bit
			// byte counters — legacy NET-SNMP behavior, preserved per spec.md §9.
			s.Insert(oid.JoinInstance(idx, base, "3"), value.NewCounter32(uint32(readBytes&0xFFFFFFFF)))
			s.Insert(oid.JoinInstance(idx, base, "4"), value.NewCounter32(uint32(writtenBytes&0xFFFFFFFF)))
			s.Insert(oid.JoinInstance(idx, base, "5"), value.NewCounter32(uint32(row.rdIOs)))
			s.Insert(oid.JoinInstance(idx, base, "6"), value.NewCounter32(uint32(row.wrIOs)))
			s.Insert(oid.JoinInstance(idx, base, "9"), value.NewInteger(0))
			s.Insert(oid.JoinInstance(idx, base, "10"), value.NewInteger(0))
			s.Insert(oid.JoinInstance(idx, base, "11"), value.NewInteger(0))
			s.Insert(oid.JoinInstance(idx, base, "12"), value.NewCounter64(readBytes))
			s.Insert(oid.JoinInstance(idx, base, "13"), value.NewCounter64(writtenBytes))

			idx++
		}
		return nil
	}
}
