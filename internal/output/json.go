// Package output renders entry lists for the one-shot commands.
package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kaval-sh/kaval/internal/model"
)

// JSONEntry represents a port entry in machine-readable output. Service is
// null when no classification matched.
type JSONEntry struct {
	Port       uint32         `json:"port"`
	Protocol   string         `json:"protocol"`
	Address    string         `json:"address"`
	PID        int32          `json:"pid"`
	Process    string         `json:"process"`
	Command    string         `json:"command,omitempty"`
	Service    *string        `json:"service"`
	Category   string         `json:"category"`
	CPU        float64        `json:"cpu"`
	MemoryMB   float64        `json:"memory_mb"`
	UptimeSecs int64          `json:"uptime_secs"`
	Container  *JSONContainer `json:"container,omitempty"`
}

// JSONContainer is the container enrichment in JSON output.
type JSONContainer struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	ID    string `json:"id"`
}

// JSONOutput is the root JSON output structure.
type JSONOutput struct {
	Timestamp time.Time   `json:"timestamp"`
	Entries   []JSONEntry `json:"entries"`
}

// RenderJSON writes the entries as indented JSON.
func RenderJSON(w io.Writer, entries []model.PortEntry) error {
	out := JSONOutput{
		Timestamp: time.Now(),
		Entries:   make([]JSONEntry, 0, len(entries)),
	}

	for i := range entries {
		e := &entries[i]
		je := JSONEntry{
			Port:       e.Port,
			Protocol:   string(e.Protocol),
			Address:    e.Addr,
			PID:        e.PID,
			Process:    e.ProcessName,
			Command:    e.ProcessCmd,
			Category:   e.Category.String(),
			CPU:        e.CPUPercent,
			MemoryMB:   e.MemoryMB,
			UptimeSecs: int64(e.Uptime.Seconds()),
		}
		if e.Service != "" {
			svc := e.Service
			je.Service = &svc
		}
		if e.Container != nil {
			je.Container = &JSONContainer{
				Name:  e.Container.Name,
				Image: e.Container.Image,
				ID:    e.Container.ID,
			}
		}
		out.Entries = append(out.Entries, je)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
