// Package agent implements the UDP request loop: bind the socket, keep the
// value store refreshed on a schedule, decode incoming PDUs, run the walk
// engine, and send GetResponse PDUs (spec.md §4.5).
package agent

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/robfig/cron/v3"

	"github.com/mzg/suntd/internal/logging"
	"github.com/mzg/suntd/internal/metrics"
	"github.com/mzg/suntd/internal/oid"
	"github.com/mzg/suntd/internal/probe"
	"github.com/mzg/suntd/internal/store"
	"github.com/mzg/suntd/internal/walk"
)

// Config configures a single agent instance (spec.md §6 CLI flags).
type Config struct {
	Port            int
	Community       string
	RefreshInterval time.Duration
}

// Agent owns the UDP socket, the probe registry and the current store
// snapshot. The store pointer is swapped under mu on every refresh; reads
// take mu.RLock to snapshot the pointer, then walk the (already immutable)
// store lock-free — the "swap-in-place strategy" of spec.md §9, required
// here because refresh runs on the cron package's own goroutine rather than
// inline with the request loop (SPEC_FULL.md §5).
type Agent struct {
	conn      *net.UDPConn
	community string
	registry  *probe.Registry
	metrics   *metrics.Metrics
	log       *logging.Logger

	refreshInterval time.Duration
	cron            *cron.Cron

	mu          sync.RWMutex
	store       *store.Store
	lastRefresh time.Time
}

// New binds the UDP socket on [::]:Port (dual-stack) and returns an Agent
// ready to Run. Bind failure is fatal at startup per spec.md §7.
func New(cfg Config, registry *probe.Registry, m *metrics.Metrics, log *logging.Logger) (*Agent, error) {
	addr := &net.UDPAddr{IP: net.IPv6zero, Port: cfg.Port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("bind [::]:%d: %w", cfg.Port, err)
	}

	a := &Agent{
		conn:            conn,
		community:       cfg.Community,
		registry:        registry,
		metrics:         m,
		log:             log,
		refreshInterval: cfg.RefreshInterval,
		store:           store.New(),
	}
	a.store.Finalize()
	return a, nil
}

// Run performs the startup-synchronous refresh (spec.md §4.5 step 2), starts
// the periodic refresh schedule, then services requests until ctx is
// cancelled. It returns nil on a clean shutdown.
func (a *Agent) Run(ctx context.Context) error {
	a.refresh()

	a.cron = cron.New()
	spec := fmt.Sprintf("@every %s", a.refreshInterval)
	if _, err := a.cron.AddFunc(spec, a.refresh); err != nil {
		return fmt.Errorf("schedule refresh %s: %w", spec, err)
	}
	a.cron.Start()
	defer a.cron.Stop()

	buf := make([]byte, 16*1024)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Fallback in case the cron tick is ever delayed past a request
		// arriving first (spec.md §3 "at least every 15 seconds").
		a.mu.RLock()
		stale := time.Since(a.lastRefresh) > a.refreshInterval
		a.mu.RUnlock()
		if stale {
			a.refresh()
		}

		a.conn.SetReadDeadline(time.Now().Add(1 * time.Second))
		n, clientAddr, err := a.conn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			continue
		}

		a.handleDatagram(buf[:n], clientAddr)
	}
}

// Close releases the UDP socket.
func (a *Agent) Close() error {
	if a.cron != nil {
		a.cron.Stop()
	}
	return a.conn.Close()
}

func (a *Agent) refresh() {
	start := time.Now()
	s := a.registry.Refresh(func(probeName string, err error) {
		a.log.Warnf("probe %s: %v", probeName, err)
		if a.metrics != nil {
			a.metrics.RecordProbeError(probeName)
		}
	})

	a.mu.Lock()
	a.store = s
	a.lastRefresh = time.Now()
	a.mu.Unlock()

	if a.metrics != nil {
		a.metrics.ObserveRefresh(time.Since(start).Seconds(), s.Len())
	}
}

func (a *Agent) handleDatagram(data []byte, clientAddr *net.UDPAddr) {
	decoder := gosnmp.GoSNMP{Version: gosnmp.Version2c, Community: a.community}
	req, err := decoder.SnmpDecodePacket(data)
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordDecodeFailure()
		}
		return
	}

	if a.metrics != nil {
		a.metrics.RecordPacket(pduTypeName(req.PDUType))
	}

	start := startOID(req)

	a.mu.RLock()
	s := a.store
	a.mu.RUnlock()

	varbinds := walk.Next(s, start)

	resp := &gosnmp.SnmpPacket{
		Version:    gosnmp.Version2c,
		Community:  a.community,
		PDUType:    gosnmp.GetResponse,
		RequestID:  req.RequestID,
		Error:      gosnmp.NoError,
		ErrorIndex: 0,
		Variables:  make([]gosnmp.SnmpPDU, len(varbinds)),
	}
	for i, vb := range varbinds {
		resp.Variables[i] = gosnmp.SnmpPDU{
			Name:  "." + vb.OID.String(),
			Type:  vb.Value.GoSNMPType(),
			Value: vb.Value.GoSNMPPayload(),
		}
	}

	out, err := resp.MarshalMsg()
	if err != nil {
		a.log.Errorf("marshal response: %v", err)
		return
	}

	if _, err := a.conn.WriteToUDP(out, clientAddr); err != nil {
		a.log.Errorf("send to %s: %v", clientAddr, err)
	}
}

// startOID parses the start OID from the request's first varbind name,
// honoring only that one (spec.md §4.5 step 1, §9 open question). A
// malformed or missing name defaults to "1".
func startOID(req *gosnmp.SnmpPacket) oid.OID {
	if req == nil || len(req.Variables) == 0 {
		return oid.New("1")
	}
	name := req.Variables[0].Name
	if len(name) > 0 && name[0] == '.' {
		name = name[1:]
	}
	if name == "" {
		return oid.New("1")
	}
	return safeParseOID(name)
}

func safeParseOID(s string) (result oid.OID) {
	defer func() {
		if recover() != nil {
			result = oid.New("1")
		}
	}()
	return oid.New(s)
}

func pduTypeName(t gosnmp.PDUType) string {
	switch t {
	case gosnmp.GetRequest:
		return "get"
	case gosnmp.GetNextRequest:
		return "get_next"
	case gosnmp.GetBulkRequest:
		return "get_bulk"
	case gosnmp.SetRequest:
		return "set"
	default:
		return "other"
	}
}
