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

type ifaceClass int

const (
	ifacePhysical ifaceClass = iota
	ifaceBonding
	ifaceBridge
	ifaceVLAN
	ifaceVirtual
)

// netDevRow is one parsed /proc/net/dev line: an interface name plus the
// 16 whitespace-separated receive/transmit counter columns that follow it.
type netDevRow struct {
	ifname string
	cols   []uint64
}

// parseNetDevLine parses one data line of /proc/net/dev (i.e. not one of
// the two header lines). It reports ok=false for lines missing the
// "ifname:" separator or with fewer than the 16 counter columns the kernel
// always emits.
func parseNetDevLine(line string) (netDevRow, bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return netDevRow{}, false
	}
	ifname := strings.TrimSpace(line[:colon])
	fields := strings.Fields(line[colon+1:])
	if len(fields) < 16 {
		return netDevRow{}, false
	}

	cols := make([]uint64, len(fields))
	for i, f := range fields {
		cols[i], _ = strconv.ParseUint(f, 10, 32)
	}
	return netDevRow{ifname: ifname, cols: cols}, true
}

// parseNetDev parses every data line of r, skipping the two header lines
// /proc/net/dev always starts with and dropping rows parseNetDevLine
// rejects.
func parseNetDev(r io.Reader) ([]netDevRow, error) {
	var rows []netDevRow
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if line <= 2 {
			continue
		}
		if row, ok := parseNetDevLine(scanner.Text()); ok {
			rows = append(rows, row)
		}
	}
	return rows, scanner.Err()
}

// classifyInterface inspects root/sys/class/net/<if> and
// root/proc/net/vlan/config to decide what kind of interface ifname is
// (original_source's mib_net.rs classify_interface). root is overridable so
// tests can point it at a fixture tree instead of the real /sys and /proc.
func classifyInterface(root, ifname string) ifaceClass {
	sysDir := filepath.Join(root, "sys/class/net", ifname)
	if _, err := os.Stat(filepath.Join(sysDir, "device")); err == nil {
		return ifacePhysical
	}
	if _, err := os.Stat(filepath.Join(sysDir, "bonding")); err == nil {
		return ifaceBonding
	}
	if _, err := os.Stat(filepath.Join(sysDir, "bridge")); err == nil {
		return ifaceBridge
	}
	if _, err := os.Stat(filepath.Join(sysDir, "master")); err == nil {
		if f, err := os.Open(filepath.Join(root, "proc/net/vlan/config")); err == nil {
			defer f.Close()
			scanner := bufio.NewScanner(f)
			line := 0
			for scanner.Scan() {
				line++
				if line <= 2 {
					continue
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) > 0 && fields[0] == ifname {
					return ifaceVLAN
				}
			}
		}
	}
	return ifaceVirtual
}

// Network populates IF-MIB::ifTable and ifXTable from /proc/net/dev
// (spec.md §4.3 "Network").
func Network() Func {
	return networkFromRoot("/")
}

// networkFromRoot is Network with the filesystem root overridable, so
// tests can point it at a fixture tree instead of the real /proc and /sys.
func networkFromRoot(root string) Func {
	return func(s *store.Store) error {
		f, err := os.Open(filepath.Join(root, "proc/net/dev"))
		if err != nil {
			return nil
		}
		defer f.Close()

		rows, err := parseNetDev(f)
		if err != nil {
			return err
		}

		idx := uint32(1)
		for _, row := range rows {
			class := classifyInterface(root, row.ifname)
			if class == ifaceVirtual {
				continue
			}

			sysDir := filepath.Join(root, "sys/class/net", row.ifname)
			mtu, _ := value.ReadFirstU32(filepath.Join(sysDir, "mtu"))
			speed, hasSpeed := value.ReadFirstU32(filepath.Join(sysDir, "speed"))
			if !hasSpeed {
				speed = 0
			}
			operUp := false
			if state, ok := value.ReadFirstLine(filepath.Join(sysDir, "operstate")); ok {
				operUp = state == "up"
			}

			ifType := 6
			switch {
			case class == ifacePhysical && strings.HasPrefix(row.ifname, "wl"):
				ifType = 71
			case class == ifaceVLAN:
				ifType = 135
			}
			operStatus := 2
			if operUp {
				operStatus = 1
			}

			inOctets := row.cols[0]
			inPackets := row.cols[1]
			inErrors := row.cols[2]
			inDiscards := row.cols[3]
			inMcast := row.cols[7]
			outOctets := row.cols[8]
			outPackets := row.cols[9]
			outErrors := row.cols[10]
			outDiscards := row.cols[11]

			ift := IfTableBase
			s.Insert(oid.JoinInstance(idx, ift, "1"), value.NewInteger(int64(idx)))
			s.Insert(oid.JoinInstance(idx, ift, "2"), value.NewOctetString(row.ifname))
			s.Insert(oid.JoinInstance(idx, ift, "3"), value.NewInteger(int64(ifType)))
			s.Insert(oid.JoinInstance(idx, ift, "4"), value.NewInteger(int64(mtu)))
			s.Insert(oid.JoinInstance(idx, ift, "5"), value.NewUnsigned32(saturatingMul1e6(speed)))
			s.Insert(oid.JoinInstance(idx, ift, "8"), value.NewInteger(int64(operStatus)))
			s.Insert(oid.JoinInstance(idx, ift, "10"), value.NewCounter32(uint32(inOctets)))
			s.Insert(oid.JoinInstance(idx, ift, "11"), value.NewCounter32(uint32(inPackets)))
			s.Insert(oid.JoinInstance(idx, ift, "12"), value.NewCounter32(uint32(inMcast)))
			s.Insert(oid.JoinInstance(idx, ift, "13"), value.NewCounter32(uint32(inDiscards)))
			s.Insert(oid.JoinInstance(idx, ift, "14"), value.NewCounter32(uint32(inErrors)))
			s.Insert(oid.JoinInstance(idx, ift, "16"), value.NewCounter32(uint32(outOctets)))
			s.Insert(oid.JoinInstance(idx, ift, "17"), value.NewCounter32(uint32(outPackets)))
			s.Insert(oid.JoinInstance(idx, ift, "19"), value.NewCounter32(uint32(outDiscards)))
			s.Insert(oid.JoinInstance(idx, ift, "20"), value.NewCounter32(uint32(outErrors)))

			ifx := IfXTableBase
			s.Insert(oid.JoinInstance(idx, ifx, "1"), value.NewOctetString(row.ifname))
			s.Insert(oid.JoinInstance(idx, ifx, "6"), value.NewCounter64(inOctets))
			s.Insert(oid.JoinInstance(idx, ifx, "7"), value.NewCounter64(inPackets))
			s.Insert(oid.JoinInstance(idx, ifx, "10"), value.NewCounter64(outOctets))
			s.Insert(oid.JoinInstance(idx, ifx, "11"), value.NewCounter64(outPackets))
			s.Insert(oid.JoinInstance(idx, ifx, "15"), value.NewUnsigned32(speed))

			idx++
		}
		return nil
	}
}

// saturatingMul1e6 converts a reported Mb/s speed to bit/s, saturating at
// the uint32 max instead of wrapping (spec.md §4.3 ifSpeed formula).
func saturatingMul1e6(mbps uint32) uint32 {
	const maxU32 = ^uint32(0)
	product := uint64(mbps) * 1_000_000
	if product > uint64(maxU32) {
		return maxU32
	}
	return uint32(product)
}
