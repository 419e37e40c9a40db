package ui

import (
	"time"

	"github.com/kaval-sh/kaval/internal/model"
)

// TickMsg is sent on each auto-refresh interval.
type TickMsg time.Time

// ScanMsg carries the result of one reconciliation scan.
type ScanMsg struct {
	Entries []model.PortEntry
	Err     error
}
