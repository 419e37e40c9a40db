package model

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// Protocol represents a network protocol.
type Protocol string

const (
	ProtocolTCP Protocol = "TCP"
	ProtocolUDP Protocol = "UDP"
)

// ServiceCategory classifies what kind of service owns a port.
type ServiceCategory int

const (
	CategoryDevServer ServiceCategory = iota
	CategoryDatabase
	CategoryCache
	CategoryContainer
	CategoryBrowser
	CategorySystem
	CategoryUnknown
)

// String returns a human-readable name for the ServiceCategory.
func (c ServiceCategory) String() string {
	switch c {
	case CategoryDevServer:
		return "DevServer"
	case CategoryDatabase:
		return "Database"
	case CategoryCache:
		return "Cache"
	case CategoryContainer:
		return "Container"
	case CategoryBrowser:
		return "Browser"
	case CategorySystem:
		return "System"
	case CategoryUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("ServiceCategory(%d)", int(c))
	}
}

// SentinelProcessName is used when a socket's owning PID vanished between
// the socket read and the process read.
const SentinelProcessName = "?"

// ContainerInfo holds Docker container metadata for a published port.
type ContainerInfo struct {
	Name  string // Container name (e.g., "pg-local")
	Image string // Image tag (e.g., "postgres:16")
	ID    string // Short container ID
}

// PortEntry is the reconciled unit of display and action: one listening
// socket joined with its owning process. Entries are rebuilt from scratch
// on every scan and never mutated in place.
type PortEntry struct {
	Protocol    Protocol
	Addr        string // local IP, e.g. "127.0.0.1" or "::"
	Port        uint32
	PID         int32
	ProcessName string
	ProcessCmd  string
	CPUPercent  float64
	MemoryMB    float64
	Uptime      time.Duration
	Service     string // known-service label, empty if unclassified
	Category    ServiceCategory
	Container   *ContainerInfo // nil unless the port is published by a container
}

// Key uniquely identifies an entry within one scan.
type Key struct {
	Protocol Protocol
	Port     uint32
	PID      int32
}

// EntryKey returns the dedup/identity key for this entry.
func (e *PortEntry) EntryKey() Key {
	return Key{Protocol: e.Protocol, Port: e.Port, PID: e.PID}
}

// AddrDisplay returns a compact address:port string for display.
func (e *PortEntry) AddrDisplay() string {
	ip := net.ParseIP(e.Addr)
	switch {
	case e.Addr == "" || (ip != nil && ip.IsUnspecified()):
		return fmt.Sprintf("*:%d", e.Port)
	case ip != nil && ip.IsLoopback() && strings.Contains(e.Addr, "."):
		return fmt.Sprintf("127…:%d", e.Port)
	default:
		return fmt.Sprintf("%s:%d", e.Addr, e.Port)
	}
}

// MemoryDisplay formats resident memory as a human-readable string.
func (e *PortEntry) MemoryDisplay() string {
	if e.MemoryMB >= 1024.0 {
		return fmt.Sprintf("%.1f GB", e.MemoryMB/1024.0)
	}
	return fmt.Sprintf("%.0f MB", e.MemoryMB)
}

// UptimeDisplay formats process run time as a human-readable string.
func (e *PortEntry) UptimeDisplay() string {
	secs := int64(e.Uptime.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
	default:
		return fmt.Sprintf("%dd %dh", secs/86400, (secs%86400)/3600)
	}
}

// SortField selects the column used to order the entry list.
type SortField int

const (
	SortPort SortField = iota // port ascending
	SortName                  // process name ascending, case-insensitive
	SortCPU                   // CPU% descending
	SortMemory                // memory descending
)

// Next cycles to the following sort field, wrapping after memory.
func (s SortField) Next() SortField {
	switch s {
	case SortPort:
		return SortName
	case SortName:
		return SortCPU
	case SortCPU:
		return SortMemory
	default:
		return SortPort
	}
}

// String returns a short label for the sort field.
func (s SortField) String() string {
	switch s {
	case SortPort:
		return "Port"
	case SortName:
		return "Name"
	case SortCPU:
		return "CPU"
	case SortMemory:
		return "Mem"
	default:
		return fmt.Sprintf("SortField(%d)", int(s))
	}
}
