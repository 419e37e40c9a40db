package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/kaval-sh/kaval/internal/model"
)

func TestRenderJSON_Shape(t *testing.T) {
	entries := []model.PortEntry{
		{
			Protocol:    model.ProtocolTCP,
			Addr:        "127.0.0.1",
			Port:        5432,
			PID:         100,
			ProcessName: "postgres",
			ProcessCmd:  "/usr/bin/postgres",
			CPUPercent:  1.5,
			MemoryMB:    64,
			Uptime:      90 * time.Second,
			Service:     "PostgreSQL",
			Category:    model.CategoryDatabase,
		},
		{
			Protocol:    model.ProtocolUDP,
			Addr:        "0.0.0.0",
			Port:        49152,
			PID:         200,
			ProcessName: "myapp",
			Category:    model.CategoryUnknown,
		},
	}

	var buf bytes.Buffer
	if err := RenderJSON(&buf, entries); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(out.Entries))
	}

	pg := out.Entries[0]
	if pg.Service == nil || *pg.Service != "PostgreSQL" {
		t.Errorf("classified entry service = %v, want PostgreSQL", pg.Service)
	}
	if pg.UptimeSecs != 90 {
		t.Errorf("uptime_secs = %d, want 90", pg.UptimeSecs)
	}
	if pg.CPU != 1.5 || pg.MemoryMB != 64 {
		t.Errorf("numeric metrics = (%v, %v), want (1.5, 64)", pg.CPU, pg.MemoryMB)
	}

	// Unclassified entries emit an explicit null, not a placeholder string.
	raw := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte(`"service": null`)) {
		t.Errorf("unclassified entry should serialize service as null, got:\n%s", raw)
	}
	if out.Entries[1].Category != "Unknown" {
		t.Errorf("category = %q, want Unknown", out.Entries[1].Category)
	}
}

func TestRenderJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, nil); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.Entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(out.Entries))
	}
}
