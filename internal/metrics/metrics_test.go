package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecordPacketExposedViaHandler(t *testing.T) {
	m := New()
	m.RecordPacket("get_next")
	m.RecordDecodeFailure()
	m.RecordProbeError("disks")
	m.ObserveRefresh(0.01, 42)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		`suntd_packets_total{pdu_type="get_next"} 1`,
		"suntd_decode_failures_total 1",
		`suntd_probe_errors_total{probe="disks"} 1`,
		"suntd_store_size 42",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q\n--- body ---\n%s", want, body)
		}
	}
}
