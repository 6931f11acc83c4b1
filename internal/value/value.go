// Package value implements the SNMP scalar variant stored against every OID
// in the agent's value store, and its projection to gosnmp's wire types.
package value

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gosnmp/gosnmp"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Boolean
	Integer
	OctetString
	IPAddress
	Counter32
	Unsigned32
	Timeticks
	Counter64
	EndOfMibView
)

// Value is a tagged union over the SNMP scalar types the agent produces.
// Construction happens through the typed constructors below; there is no
// exported way to build a Value with a mismatched Kind/payload pair.
type Value struct {
	kind   Kind
	i64    int64
	u64    uint64
	str    string
	ipAddr [4]byte
	b      bool
}

func Null_() Value                { return Value{kind: Null} }
func NewBoolean(v bool) Value     { return Value{kind: Boolean, b: v} }
func NewInteger(v int64) Value    { return Value{kind: Integer, i64: v} }
func NewOctetString(v string) Value {
	return Value{kind: OctetString, str: v}
}
func NewIPAddress(a [4]byte) Value   { return Value{kind: IPAddress, ipAddr: a} }
func NewCounter32(v uint32) Value    { return Value{kind: Counter32, u64: uint64(v)} }
func NewUnsigned32(v uint32) Value   { return Value{kind: Unsigned32, u64: uint64(v)} }
func NewTimeticks(v uint32) Value    { return Value{kind: Timeticks, u64: uint64(v)} }
func NewCounter64(v uint64) Value    { return Value{kind: Counter64, u64: v} }
func NewEndOfMibView() Value         { return Value{kind: EndOfMibView} }

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind { return v.kind }

// GoSNMPType projects the variant to gosnmp's wire-level ASN.1 BER tag.
func (v Value) GoSNMPType() gosnmp.Asn1BER {
	switch v.kind {
	case Null:
		return gosnmp.Null
	case Boolean:
		return gosnmp.Boolean
	case Integer:
		return gosnmp.Integer
	case OctetString:
		return gosnmp.OctetString
	case IPAddress:
		return gosnmp.IPAddress
	case Counter32:
		return gosnmp.Counter32
	case Unsigned32:
		return gosnmp.Gauge32
	case Timeticks:
		return gosnmp.TimeTicks
	case Counter64:
		return gosnmp.Counter64
	case EndOfMibView:
		return gosnmp.EndOfMibView
	default:
		panic(fmt.Sprintf("value: unhandled kind %d", v.kind))
	}
}

// GoSNMPPayload projects the variant to the interface{} gosnmp.SnmpPDU.Value
// expects for the corresponding Asn1BER tag.
func (v Value) GoSNMPPayload() interface{} {
	switch v.kind {
	case Null, EndOfMibView:
		return nil
	case Boolean:
		return v.b
	case Integer:
		return int(v.i64)
	case OctetString:
		return v.str
	case IPAddress:
		return fmt.Sprintf("%d.%d.%d.%d", v.ipAddr[0], v.ipAddr[1], v.ipAddr[2], v.ipAddr[3])
	case Counter32, Unsigned32, Timeticks:
		return uint32(v.u64)
	case Counter64:
		return v.u64
	default:
		panic(fmt.Sprintf("value: unhandled kind %d", v.kind))
	}
}

// String renders the value for logging/debugging.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "<null>"
	case Boolean:
		return strconv.FormatBool(v.b)
	case Integer:
		return strconv.FormatInt(v.i64, 10)
	case OctetString:
		return v.str
	case IPAddress:
		return fmt.Sprintf("%d.%d.%d.%d", v.ipAddr[0], v.ipAddr[1], v.ipAddr[2], v.ipAddr[3])
	case Counter32, Unsigned32, Timeticks, Counter64:
		return strconv.FormatUint(v.u64, 10)
	case EndOfMibView:
		return "<endOfMibView>"
	default:
		return "<unknown>"
	}
}

// ReadFirstLine reads the first line of path, trimmed of surrounding
// whitespace. It fails cleanly (returns ok=false) when the file is absent
// or unreadable, matching the permissive probe contract in spec.md §7.
func ReadFirstLine(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// ReadFirstU32 reads the first line of path and parses the substring before
// the first "." as an unsigned 32-bit integer. /proc/uptime holds
// "seconds.hundredths"; this extracts the integer seconds component and is
// also used for plain integer files like /sys/class/net/*/mtu.
func ReadFirstU32(path string) (uint32, bool) {
	line, ok := ReadFirstLine(path)
	if !ok {
		return 0, false
	}
	head := line
	if idx := strings.IndexByte(line, '.'); idx >= 0 {
		head = line[:idx]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(head), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
