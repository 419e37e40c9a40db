// Package scanner reconciles listening sockets with their owning processes.
package scanner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kaval-sh/kaval/internal/docker"
	"github.com/kaval-sh/kaval/internal/model"
	"github.com/kaval-sh/kaval/internal/services"
)

// SocketRecord is one bound socket as reported by the OS socket table.
// A single record may carry several owning PIDs (shared listeners).
type SocketRecord struct {
	Protocol model.Protocol
	IP       string
	Port     uint32
	State    string // "LISTEN" for TCP listeners, empty/NONE for UDP
	PIDs     []int32
}

// ProcessSnapshot is one process as reported by the OS process table.
type ProcessSnapshot struct {
	PID        int32
	Name       string
	Cmdline    string
	CPUPercent float64
	MemoryRSS  uint64 // bytes
	CreateTime int64  // ms since epoch, 0 if unknown
}

// SocketSource reads the OS socket table.
type SocketSource interface {
	Sockets(ctx context.Context, includeTCP, includeUDP bool) ([]SocketRecord, error)
}

// ProcessSource reads the OS process table.
type ProcessSource interface {
	Snapshot(ctx context.Context) (map[int32]ProcessSnapshot, error)
}

// Scanner joins socket records with process snapshots into PortEntry values.
type Scanner struct {
	sockets   SocketSource
	processes ProcessSource
	resolver  docker.Resolver // nil disables container enrichment
	now       func() time.Time
}

// New returns a Scanner backed by the OS socket and process tables.
// resolver may be nil to skip Docker container enrichment.
func New(resolver docker.Resolver) *Scanner {
	return &Scanner{
		sockets:   &gopsutilSockets{},
		processes: &gopsutilProcesses{},
		resolver:  resolver,
		now:       time.Now,
	}
}

// NewWithSources returns a Scanner with explicit sources, for tests.
func NewWithSources(sockets SocketSource, processes ProcessSource) *Scanner {
	return &Scanner{
		sockets:   sockets,
		processes: processes,
		now:       time.Now,
	}
}

// Scan produces the reconciled entry list for the requested protocols.
// A failed socket or process read aborts the whole scan; no partial data
// is ever returned. Entries are ordered by ascending port.
func (s *Scanner) Scan(ctx context.Context, includeTCP, includeUDP bool) ([]model.PortEntry, error) {
	records, err := s.sockets.Sockets(ctx, includeTCP, includeUDP)
	if err != nil {
		return nil, fmt.Errorf("read sockets: %w", err)
	}

	// One snapshot per scan keeps all entries consistent.
	procs, err := s.processes.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read processes: %w", err)
	}

	containers := s.resolveContainers(ctx)

	entries := make([]model.PortEntry, 0, len(records))
	seen := make(map[model.Key]struct{})

	for _, rec := range records {
		if rec.Protocol == model.ProtocolTCP && rec.State != "LISTEN" {
			continue
		}
		for _, pid := range rec.PIDs {
			key := model.Key{Protocol: rec.Protocol, Port: rec.Port, PID: pid}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			entries = append(entries, s.buildEntry(rec, pid, procs, containers))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Port < entries[j].Port
	})
	return entries, nil
}

// buildEntry joins one socket/PID pair with its process snapshot. A PID
// that raced away between the two reads degrades to sentinel values; the
// socket is real even without process metadata.
func (s *Scanner) buildEntry(rec SocketRecord, pid int32, procs map[int32]ProcessSnapshot, containers map[uint32]*model.ContainerInfo) model.PortEntry {
	entry := model.PortEntry{
		Protocol:    rec.Protocol,
		Addr:        rec.IP,
		Port:        rec.Port,
		PID:         pid,
		ProcessName: model.SentinelProcessName,
	}

	if p, ok := procs[pid]; ok {
		entry.ProcessName = p.Name
		entry.ProcessCmd = p.Cmdline
		entry.CPUPercent = p.CPUPercent
		entry.MemoryMB = float64(p.MemoryRSS) / (1024.0 * 1024.0)
		if p.CreateTime > 0 {
			created := time.UnixMilli(p.CreateTime)
			if up := s.now().Sub(created); up > 0 {
				entry.Uptime = up
			}
		}
	}

	entry.Service, entry.Category = services.Classify(rec.Port, entry.ProcessName)
	entry.Container = containers[rec.Port]
	return entry
}

// resolveContainers maps published host ports to container info. Docker
// being unavailable is not an error; enrichment is best effort.
func (s *Scanner) resolveContainers(ctx context.Context) map[uint32]*model.ContainerInfo {
	if s.resolver == nil {
		return nil
	}
	ports, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil
	}
	result := make(map[uint32]*model.ContainerInfo, len(ports))
	for port, cp := range ports {
		info := cp.Container
		result[uint32(port)] = &info
	}
	return result
}

// FilterByPort returns the entries listening on exactly the given port.
func FilterByPort(entries []model.PortEntry, port uint32) []model.PortEntry {
	var out []model.PortEntry
	for _, e := range entries {
		if e.Port == port {
			out = append(out, e)
		}
	}
	return out
}
