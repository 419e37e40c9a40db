package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/kaval-sh/kaval/internal/model"
)

// RenderTable writes a plain-text summary table of the entries.
func RenderTable(w io.Writer, entries []model.PortEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No listening ports found.")
		return
	}

	fmt.Fprintf(w, "%-7s %-5s %-15s %-18s %-7s %-7s %-9s %s\n",
		"PORT", "PROTO", "PROCESS", "SERVICE", "PID", "CPU", "MEM", "UPTIME")
	fmt.Fprintln(w, strings.Repeat("─", 80))

	for i := range entries {
		e := &entries[i]
		service := e.Service
		if service == "" {
			service = "—"
		}
		fmt.Fprintf(w, "%-7d %-5s %-15s %-18s %-7d %-7s %-9s %s\n",
			e.Port,
			e.Protocol,
			truncate(e.ProcessName, 15),
			truncate(service, 18),
			e.PID,
			fmt.Sprintf("%.1f%%", e.CPUPercent),
			e.MemoryDisplay(),
			e.UptimeDisplay(),
		)
	}
}

// RenderDetail writes a multi-line description of one entry, used by the
// check command.
func RenderDetail(w io.Writer, e *model.PortEntry) {
	service := ""
	if e.Service != "" {
		service = fmt.Sprintf(" [%s]", e.Service)
	}
	fmt.Fprintf(w, "Port %d (%s) — %s (PID %d)%s\n", e.Port, e.Protocol, e.ProcessName, e.PID, service)
	if e.ProcessCmd != "" {
		fmt.Fprintf(w, "  Command: %s\n", e.ProcessCmd)
	}
	if e.Container != nil {
		fmt.Fprintf(w, "  Container: %s (%s)\n", e.Container.Name, e.Container.Image)
	}
	fmt.Fprintf(w, "  CPU: %.1f%%  Memory: %s  Uptime: %s\n",
		e.CPUPercent, e.MemoryDisplay(), e.UptimeDisplay())
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
