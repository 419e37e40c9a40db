package ui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaval-sh/kaval/internal/model"
)

// Init schedules the first tick and the initial scan.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.scanCmd())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		return m, tea.Batch(m.tickCmd(), m.scanCmd())

	case ScanMsg:
		if msg.Err != nil {
			// A failed scan never tears down the session; the previous
			// entry list stays on screen.
			m.setStatus(fmt.Sprintf("Scan error: %v", msg.Err))
			return m, nil
		}
		if m.highlightChanges {
			m.added = addedKeys(m.entries, msg.Entries)
		}
		m.entries = msg.Entries
		m.sortEntries()
		m.applyFilter()
		return m, nil
	}

	return m, nil
}

// handleKey dispatches a key by input mode. Confirmation has exclusive
// input priority: while it is pending no other shortcut is honored.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.mode == modeConfirm {
		target := m.confirmTarget
		m.mode = modeNormal
		m.confirmTarget = 0
		if key == "y" || key == "Y" {
			return m.executeKill(target, false)
		}
		return m, nil // any other key cancels
	}

	// Global shortcuts work in normal and filter-edit modes.
	switch {
	case matchKey(key, KeyQuit, KeyQuitAlt):
		m.quitting = true
		return m, tea.Quit

	case matchKey(key, KeyKill):
		if m.cursor != noSelection {
			m.mode = modeConfirm
			m.confirmTarget = m.cursor
		}
		return m, nil

	case matchKey(key, KeyForceKill):
		if m.cursor == noSelection {
			return m, nil
		}
		return m.executeKill(m.cursor, true)

	case matchKey(key, KeyDetail):
		m.showDetail = !m.showDetail
		return m, nil

	case matchKey(key, KeySort):
		m.sortField = m.sortField.Next()
		m.sortEntries()
		m.applyFilter()
		return m, nil

	case matchKey(key, KeyProto):
		m.cycleProtocols()
		return m, m.scanCmd()

	case matchKey(key, KeyRefresh):
		m.setStatus("Refreshed")
		return m, m.scanCmd()
	}

	if m.mode == modeFilter {
		switch key {
		case "esc", "enter":
			m.mode = modeNormal
		case "backspace":
			if len(m.filterText) > 0 {
				m.filterText = m.filterText[:len(m.filterText)-1]
				m.applyFilter()
			}
		default:
			if len(msg.Runes) == 1 && msg.Runes[0] >= 32 {
				m.filterText += string(msg.Runes)
				m.applyFilter()
			}
		}
		return m, nil
	}

	// Normal mode.
	switch {
	case matchKey(key, KeyEsc):
		m.quitting = true
		return m, tea.Quit
	case matchKey(key, KeyFilter):
		m.mode = modeFilter
	case matchKey(key, KeyUp, KeyUpAlt):
		m.moveSelection(-1)
	case matchKey(key, KeyDown, KeyDownAlt):
		m.moveSelection(1)
	}
	return m, nil
}

// sortEntries orders the entry list by the active sort field. Sorting is
// stable so equal keys keep their port order.
func (m *Model) sortEntries() {
	entries := m.entries
	switch m.sortField {
	case model.SortPort:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Port < entries[j].Port
		})
	case model.SortName:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].ProcessName) < strings.ToLower(entries[j].ProcessName)
		})
	case model.SortCPU:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CPUPercent > entries[j].CPUPercent
		})
	case model.SortMemory:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].MemoryMB > entries[j].MemoryMB
		})
	}
}

// applyFilter recomputes the filter view and keeps the selection valid:
// the cursor is clamped to the last matching row, or cleared when nothing
// matches.
func (m *Model) applyFilter() {
	query := strings.ToLower(m.filterText)

	m.filtered = m.filtered[:0]
	for i := range m.entries {
		if query == "" || entryMatches(&m.entries[i], query) {
			m.filtered = append(m.filtered, i)
		}
	}

	switch {
	case len(m.filtered) == 0:
		m.cursor = noSelection
	case m.cursor == noSelection:
		m.cursor = 0
	case m.cursor >= len(m.filtered):
		m.cursor = len(m.filtered) - 1
	}
}

// entryMatches reports whether the entry satisfies a lowercased filter
// query: substring match against the port digits, the process name and
// the known-service label.
func entryMatches(e *model.PortEntry, query string) bool {
	if strings.Contains(strconv.Itoa(int(e.Port)), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.ProcessName), query) {
		return true
	}
	return e.Service != "" && strings.Contains(strings.ToLower(e.Service), query)
}

// moveSelection moves the cursor by delta, clamped to the filter view.
func (m *Model) moveSelection(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.filtered)-1 {
		next = len(m.filtered) - 1
	}
	m.cursor = next
}

// cycleProtocols advances protocol visibility: both → TCP → UDP → both.
func (m *Model) cycleProtocols() {
	switch {
	case m.showTCP && m.showUDP:
		m.showUDP = false
	case m.showTCP:
		m.showTCP = false
		m.showUDP = true
	default:
		m.showTCP = true
		m.showUDP = true
	}
}

// executeKill terminates the entry at the given filter-view index. The
// outcome, success or failure, becomes a transient status message; only
// success triggers a rescan.
func (m Model) executeKill(viewIdx int, force bool) (tea.Model, tea.Cmd) {
	entry := m.entryAt(viewIdx)
	if entry == nil {
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	// A container-held port belongs to the daemon's proxy; signalling the
	// local PID would not free it. Act on the container instead.
	if entry.Container != nil {
		return m.executeContainerKill(ctx, entry, force)
	}

	verb := "Killed"
	if force {
		verb = "Force killed"
	}

	if err := m.terminate(ctx, entry.PID, force); err != nil {
		m.setStatus(fmt.Sprintf("Kill failed: %v", err))
		return m, nil
	}

	m.setStatus(fmt.Sprintf("%s %s (PID %d) on port %d", verb, entry.ProcessName, entry.PID, entry.Port))
	return m, m.scanCmd()
}

// containerStopTimeout is how long the daemon waits for a graceful stop
// before force-killing the container, in seconds.
const containerStopTimeout = 5

func (m Model) executeContainerKill(ctx context.Context, entry *model.PortEntry, force bool) (tea.Model, tea.Cmd) {
	if force {
		if err := m.killContainer(ctx, entry.Container.ID); err != nil {
			m.setStatus(fmt.Sprintf("Kill failed: %v", err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Killed container %s on port %d", entry.Container.Name, entry.Port))
		return m, m.scanCmd()
	}

	if err := m.stopContainer(ctx, entry.Container.ID, containerStopTimeout); err != nil {
		m.setStatus(fmt.Sprintf("Kill failed: %v", err))
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Stopped container %s on port %d", entry.Container.Name, entry.Port))
	return m, m.scanCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// scanCmd runs one reconciliation scan off the update loop. Results come
// back as a ScanMsg, so state is only ever replaced between key events.
func (m Model) scanCmd() tea.Cmd {
	includeTCP, includeUDP := m.showTCP, m.showUDP
	sc := m.scanner
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		entries, err := sc.Scan(ctx, includeTCP, includeUDP)
		return ScanMsg{Entries: entries, Err: err}
	}
}
