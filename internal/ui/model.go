package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaval-sh/kaval/internal/config"
	"github.com/kaval-sh/kaval/internal/docker"
	"github.com/kaval-sh/kaval/internal/model"
	"github.com/kaval-sh/kaval/internal/process"
)

// statusWindow is how long a transient status message stays visible.
// Expiry is evaluated at render time; there is no separate timer.
const statusWindow = 3 * time.Second

// scanTimeout bounds a single reconciliation scan.
const scanTimeout = 5 * time.Second

// noSelection marks an empty filter view.
const noSelection = -1

// inputMode is the exclusive input state of the session. Exactly one mode
// is active at any time.
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter
	modeConfirm
)

// Scanner produces the reconciled entry list. Satisfied by
// *scanner.Scanner; mocked in tests.
type Scanner interface {
	Scan(ctx context.Context, includeTCP, includeUDP bool) ([]model.PortEntry, error)
}

// status is a transient message with its creation time.
type status struct {
	text string
	at   time.Time
}

// Model is the Bubble Tea model for the interactive session. It owns the
// entry list and every piece of UI-facing derived state; entries are only
// replaced wholesale by ScanMsg, never mutated in place.
type Model struct {
	scanner Scanner

	// Data
	entries  []model.PortEntry
	filtered []int                  // indices into entries satisfying the filter, in sort order
	added    map[model.Key]struct{} // keys that appeared on the last scan

	// Input state
	mode          inputMode
	confirmTarget int // filter-view index awaiting kill confirmation; valid only in modeConfirm
	cursor        int // selection index into filtered, noSelection when empty
	filterText    string

	// View state
	showTCP    bool
	showUDP    bool
	sortField  model.SortField
	showDetail bool
	status     *status

	// Configuration
	refreshInterval  time.Duration
	highlightChanges bool
	styles           Styles

	// Dimensions
	width  int
	height int

	viewport viewport.Model
	ready    bool

	quitting bool

	// Injection points for tests.
	now           func() time.Time
	terminate     func(ctx context.Context, pid int32, force bool) error
	stopContainer func(ctx context.Context, containerID string, timeoutSecs int) error
	killContainer func(ctx context.Context, containerID string) error
}

// NewModel creates a session model. The theme is constructed once here and
// carried through to every render; nothing reads global styling state.
func NewModel(sc Scanner, settings *config.Settings, theme *config.Theme) Model {
	return Model{
		scanner:          sc,
		cursor:           noSelection,
		showTCP:          settings.ShowTCP,
		showUDP:          settings.ShowUDP,
		sortField:        model.SortPort,
		refreshInterval:  settings.RefreshInterval(),
		highlightChanges: settings.HighlightChanges,
		styles:           NewStyles(theme),
		now:              time.Now,
		terminate:        process.Terminate,
		stopContainer:    docker.StopContainer,
		killContainer:    docker.KillContainer,
	}
}

// WithFilter returns a copy of the model with an initial filter query.
func (m Model) WithFilter(query string) Model {
	m.filterText = query
	return m
}

// selectedEntry returns the entry under the cursor, or nil if the view is
// empty.
func (m *Model) selectedEntry() *model.PortEntry {
	if m.cursor == noSelection || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.entries[m.filtered[m.cursor]]
}

// entryAt returns the entry at the given filter-view index, or nil.
func (m *Model) entryAt(viewIdx int) *model.PortEntry {
	if viewIdx < 0 || viewIdx >= len(m.filtered) {
		return nil
	}
	return &m.entries[m.filtered[viewIdx]]
}

// setStatus records a transient status message.
func (m *Model) setStatus(text string) {
	m.status = &status{text: text, at: m.now()}
}

// currentStatus returns the status text if it is still within its display
// window.
func (m *Model) currentStatus() string {
	if m.status == nil || m.now().Sub(m.status.at) >= statusWindow {
		return ""
	}
	return m.status.text
}

var _ tea.Model = Model{}
