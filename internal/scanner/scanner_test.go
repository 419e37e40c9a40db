package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaval-sh/kaval/internal/model"
)

// mockSockets is a test double for SocketSource.
type mockSockets struct {
	records []SocketRecord
	err     error
}

func (m *mockSockets) Sockets(ctx context.Context, includeTCP, includeUDP bool) ([]SocketRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []SocketRecord
	for _, r := range m.records {
		if r.Protocol == model.ProtocolTCP && !includeTCP {
			continue
		}
		if r.Protocol == model.ProtocolUDP && !includeUDP {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// mockProcesses is a test double for ProcessSource.
type mockProcesses struct {
	snapshot map[int32]ProcessSnapshot
	err      error
}

func (m *mockProcesses) Snapshot(ctx context.Context) (map[int32]ProcessSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshot, nil
}

func newTestScanner(sockets []SocketRecord, procs map[int32]ProcessSnapshot) *Scanner {
	s := NewWithSources(&mockSockets{records: sockets}, &mockProcesses{snapshot: procs})
	s.now = func() time.Time { return time.UnixMilli(1_000_000) }
	return s
}

func TestScan_JoinsSocketWithProcess(t *testing.T) {
	sockets := []SocketRecord{
		{Protocol: model.ProtocolTCP, IP: "127.0.0.1", Port: 5432, State: "LISTEN", PIDs: []int32{100}},
	}
	procs := map[int32]ProcessSnapshot{
		100: {PID: 100, Name: "postgres", Cmdline: "/usr/bin/postgres -D /data",
			CPUPercent: 2.5, MemoryRSS: 64 * 1024 * 1024, CreateTime: 400_000},
	}

	entries, err := newTestScanner(sockets, procs).Scan(context.Background(), true, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.ProcessName != "postgres" {
		t.Errorf("ProcessName = %q, want postgres", e.ProcessName)
	}
	if e.Service != "PostgreSQL" || e.Category != model.CategoryDatabase {
		t.Errorf("classification = (%q, %v), want (PostgreSQL, Database)", e.Service, e.Category)
	}
	if e.MemoryMB != 64 {
		t.Errorf("MemoryMB = %v, want 64", e.MemoryMB)
	}
	if e.Uptime != 600*time.Second {
		t.Errorf("Uptime = %v, want 10m", e.Uptime)
	}
}

func TestScan_DedupByProtocolPortPID(t *testing.T) {
	sockets := []SocketRecord{
		// Same port/pid over IPv4 and IPv6: one entry.
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 8080, State: "LISTEN", PIDs: []int32{100}},
		{Protocol: model.ProtocolTCP, IP: "::", Port: 8080, State: "LISTEN", PIDs: []int32{100}},
		// Shared listener: one socket, two owning PIDs.
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 9000, State: "LISTEN", PIDs: []int32{200, 201}},
	}

	entries, err := newTestScanner(sockets, nil).Scan(context.Background(), true, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	seen := make(map[model.Key]bool)
	for _, e := range entries {
		k := e.EntryKey()
		if seen[k] {
			t.Errorf("duplicate entry for key %+v", k)
		}
		seen[k] = true
	}
}

func TestScan_SamePortTCPAndUDPAreDistinct(t *testing.T) {
	sockets := []SocketRecord{
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 5173, State: "LISTEN", PIDs: []int32{100}},
		{Protocol: model.ProtocolUDP, IP: "0.0.0.0", Port: 5173, PIDs: []int32{100}},
	}
	procs := map[int32]ProcessSnapshot{
		100: {PID: 100, Name: "node"},
	}

	entries, err := newTestScanner(sockets, procs).Scan(context.Background(), true, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (protocol is part of the dedup key)", len(entries))
	}
	for _, e := range entries {
		if e.Service != "Vite" || e.Category != model.CategoryDevServer {
			t.Errorf("port 5173 entry classified as (%q, %v), want (Vite, DevServer)", e.Service, e.Category)
		}
	}
}

func TestScan_SkipsNonListeningTCP(t *testing.T) {
	sockets := []SocketRecord{
		{Protocol: model.ProtocolTCP, IP: "10.0.0.5", Port: 44321, State: "ESTABLISHED", PIDs: []int32{100}},
		{Protocol: model.ProtocolTCP, IP: "10.0.0.5", Port: 44322, State: "TIME_WAIT", PIDs: []int32{100}},
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 80, State: "LISTEN", PIDs: []int32{100}},
		// UDP has no listen concept; every bound record counts.
		{Protocol: model.ProtocolUDP, IP: "0.0.0.0", Port: 53, PIDs: []int32{200}},
	}

	entries, err := newTestScanner(sockets, nil).Scan(context.Background(), true, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Port != 53 || entries[1].Port != 80 {
		t.Errorf("ports = %d, %d, want 53, 80", entries[0].Port, entries[1].Port)
	}
}

func TestScan_MissingPIDGetsSentinel(t *testing.T) {
	sockets := []SocketRecord{
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 5173, State: "LISTEN", PIDs: []int32{200}},
	}

	entries, err := newTestScanner(sockets, map[int32]ProcessSnapshot{}).Scan(context.Background(), true, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (entry must survive a vanished PID)", len(entries))
	}

	e := entries[0]
	if e.ProcessName != model.SentinelProcessName {
		t.Errorf("ProcessName = %q, want sentinel %q", e.ProcessName, model.SentinelProcessName)
	}
	if e.CPUPercent != 0 || e.MemoryMB != 0 || e.Uptime != 0 {
		t.Errorf("metrics = (%v, %v, %v), want all zero", e.CPUPercent, e.MemoryMB, e.Uptime)
	}
	// Classifier still runs on the sentinel name and hits the port table.
	if e.Service != "Vite" || e.Category != model.CategoryDevServer {
		t.Errorf("classification = (%q, %v), want (Vite, DevServer)", e.Service, e.Category)
	}
}

func TestScan_SortedByPortAscending(t *testing.T) {
	sockets := []SocketRecord{
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 9090, State: "LISTEN", PIDs: []int32{1}},
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 80, State: "LISTEN", PIDs: []int32{2}},
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 5432, State: "LISTEN", PIDs: []int32{3}},
	}

	entries, err := newTestScanner(sockets, nil).Scan(context.Background(), true, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Port > entries[i].Port {
			t.Errorf("entries not sorted: port %d before %d", entries[i-1].Port, entries[i].Port)
		}
	}
}

func TestScan_ProtocolFlags(t *testing.T) {
	sockets := []SocketRecord{
		{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 80, State: "LISTEN", PIDs: []int32{1}},
		{Protocol: model.ProtocolUDP, IP: "0.0.0.0", Port: 53, PIDs: []int32{2}},
	}

	entries, err := newTestScanner(sockets, nil).Scan(context.Background(), true, false)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Protocol != model.ProtocolTCP {
		t.Errorf("TCP-only scan returned %d entries, want 1 TCP entry", len(entries))
	}

	entries, err = newTestScanner(sockets, nil).Scan(context.Background(), false, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Protocol != model.ProtocolUDP {
		t.Errorf("UDP-only scan returned %d entries, want 1 UDP entry", len(entries))
	}
}

func TestScan_SocketReadFailureAbortsScan(t *testing.T) {
	readErr := errors.New("proc not mounted")
	s := NewWithSources(&mockSockets{err: readErr}, &mockProcesses{})

	entries, err := s.Scan(context.Background(), true, true)
	if err == nil {
		t.Fatal("Scan() should fail when the socket read fails")
	}
	if !errors.Is(err, readErr) {
		t.Errorf("error should wrap the source failure, got %v", err)
	}
	if entries != nil {
		t.Errorf("no partial data on failure, got %d entries", len(entries))
	}
}

func TestScan_ProcessReadFailureAbortsScan(t *testing.T) {
	readErr := errors.New("permission denied")
	s := NewWithSources(
		&mockSockets{records: []SocketRecord{
			{Protocol: model.ProtocolTCP, IP: "0.0.0.0", Port: 80, State: "LISTEN", PIDs: []int32{1}},
		}},
		&mockProcesses{err: readErr},
	)

	if _, err := s.Scan(context.Background(), true, true); !errors.Is(err, readErr) {
		t.Errorf("Scan() error = %v, want wrapped %v", err, readErr)
	}
}

func TestFilterByPort(t *testing.T) {
	entries := []model.PortEntry{
		{Port: 5432, PID: 1},
		{Port: 54321, PID: 2},
		{Port: 5432, PID: 3},
	}

	got := FilterByPort(entries, 5432)
	if len(got) != 2 {
		t.Fatalf("FilterByPort(5432) returned %d entries, want 2", len(got))
	}
	for _, e := range got {
		if e.Port != 5432 {
			t.Errorf("entry port = %d, want exactly 5432", e.Port)
		}
	}

	if got := FilterByPort(entries, 9999); len(got) != 0 {
		t.Errorf("FilterByPort(9999) returned %d entries, want 0", len(got))
	}
}
