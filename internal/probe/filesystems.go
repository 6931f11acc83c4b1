package probe

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/value"
)

// mountRow is one /proc/mounts line worth looking up with statvfs:
// a real block device backing some mountpoint.
type mountRow struct {
	device, mountpoint string
}

// parseMountsLine parses one /proc/mounts line. It reports ok=false for
// short lines and anything not backed by a /dev device (tmpfs, proc,
// cgroup, ...), matching the filter Filesystems applied inline.
func parseMountsLine(line string) (mountRow, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return mountRow{}, false
	}
	device, mountpoint := fields[0], fields[1]
	if !strings.HasPrefix(device, "/dev") {
		return mountRow{}, false
	}
	return mountRow{device: device, mountpoint: mountpoint}, true
}

// parseMounts parses every line of r, dropping rows parseMountsLine rejects.
func parseMounts(r io.Reader) ([]mountRow, error) {
	var rows []mountRow
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if row, ok := parseMountsLine(scanner.Text()); ok {
			rows = append(rows, row)
		}
	}
	return rows, scanner.Err()
}

// dskPercent computes the UCD dskTable percentage fields (used/total and
// used-inodes/total-inodes, each 0-100), matching the integer-truncating
// division the original C agent uses. total == 0 reports ok=false so the
// caller can skip the OID instead of dividing by zero.
func dskPercent(used, total uint64) (int64, bool) {
	if total == 0 {
		return 0, false
	}
	return int64(100 * used / total), true
}

// Filesystems populates hrStorageTable and the UCD dskTable from
// /proc/mounts (spec.md §4.3 "Filesystems"). It uses golang.org/x/sys/unix's
// Statfs (a direct syscall) rather than cgo's statvfs(3), which original
// _source's Rust implementation called through libc — the fields used here
// (Frsize, Blocks, Bfree, Bavail, Files, Ffree, Fsid) are the same ones
// statvfs(3) exposes. Statfs always targets the live mountpoint, so unlike
// the line-parsing and percentage math above it has no fixture-root
// override: there is no way to statvfs a file that doesn't back a real
// mounted filesystem.
func Filesystems() Func {
	return func(s *store.Store) error {
		f, err := os.Open("/proc/mounts")
		if err != nil {
			return nil
		}
		defer f.Close()

		rows, err := parseMounts(f)
		if err != nil {
			return err
		}

		idx := uint32(1)
		seen := make(map[[2]int32]bool)

		for _, row := range rows {
			var st unix.Statfs_t
			if err := unix.Statfs(row.mountpoint, &st); err != nil {
				continue
			}

			if seen[st.Fsid.Val] {
				continue
			}
			seen[st.Fsid.Val] = true

			devPath := resolveDevSymlinks(row.device)
			alias := row.device
			if strings.HasPrefix(devPath, "/dev/dm-") {
				if a := canonicalizeDMName(devPath); a != "" {
					alias = "/dev/" + a
				}
			}

			frsize := uint64(st.Frsize)
			blocks := st.Blocks
			bfree := st.Bfree
			bavail := st.Bavail
			used := blocks - bfree

			hr := HrStorageBase
			s.Insert(oid.JoinInstance(idx, hr, "1"), value.NewInteger(int64(idx)))
			s.Insert(oid.JoinInstance(idx, hr, "2"), value.Null_())
			s.Insert(oid.JoinInstance(idx, hr, "3"), value.NewOctetString(row.mountpoint))
			s.Insert(oid.JoinInstance(idx, hr, "4"), value.NewInteger(int64(st.Frsize)))
			s.Insert(oid.JoinInstance(idx, hr, "5"), value.NewInteger(int64(blocks)))
			s.Insert(oid.JoinInstance(idx, hr, "6"), value.NewInteger(int64(used)))

			dsk := DskTableBase
			s.Insert(oid.JoinInstance(idx, dsk, "1"), value.NewInteger(int64(idx)))
			s.Insert(oid.JoinInstance(idx, dsk, "2"), value.NewOctetString(row.mountpoint))
			s.Insert(oid.JoinInstance(idx, dsk, "3"), value.NewOctetString(alias))
			s.Insert(oid.JoinInstance(idx, dsk, "4"), value.NewInteger(0))
			s.Insert(oid.JoinInstance(idx, dsk, "5"), value.NewInteger(-1))
			s.Insert(oid.JoinInstance(idx, dsk, "6"), value.NewInteger(int64(blocks*frsize/1024)))
			s.Insert(oid.JoinInstance(idx, dsk, "7"), value.NewInteger(int64(bavail*frsize/1024)))
			s.Insert(oid.JoinInstance(idx, dsk, "8"), value.NewInteger(int64(used*frsize/1024)))
			if pct, ok := dskPercent(used, blocks); ok {
				s.Insert(oid.JoinInstance(idx, dsk, "9"), value.NewInteger(pct))
			}
			if pct, ok := dskPercent(st.Files-st.Ffree, st.Files); ok {
				s.Insert(oid.JoinInstance(idx, dsk, "10"), value.NewInteger(pct))
			}

			idx++
		}
		return nil
	}
}
