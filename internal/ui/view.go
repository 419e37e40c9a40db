package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaval-sh/kaval/internal/model"
)

// Layout constants for the fixed header/footer around the scrollable table.
const (
	headerHeight = 3
	footerHeight = 2
)

// Table column widths.
var columnWidths = []int{7, 5, 15, 18, 7, 7, 9, 8}

var columnLabels = []string{"PORT", "PROTO", "PROCESS", "SERVICE", "PID", "CPU", "MEM", "UPTIME"}

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting kaval…"
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	if m.mode == modeConfirm {
		content = m.renderConfirm()
	} else if m.showDetail {
		tableWidth := m.width * 3 / 5
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderTable(tableWidth),
			m.renderDetail(m.width-tableWidth),
		)
	} else {
		content = m.renderTable(m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderHeader shows the title, the live filter, protocol toggles and the
// active sort field.
func (m Model) renderHeader() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(" kaval"))
	b.WriteString(m.styles.Subtitle.Render(" — guard your ports  "))

	b.WriteString(m.styles.Secondary.Render("Filter: "))
	filter := m.filterText
	if m.mode == modeFilter {
		filter += "▌"
		b.WriteString(m.styles.FilterText.Render(filter))
	} else {
		b.WriteString(m.styles.Text.Render(filter))
	}

	b.WriteString("  ")
	b.WriteString(m.protoIndicator("TCP", m.showTCP))
	b.WriteString(" ")
	b.WriteString(m.protoIndicator("UDP", m.showUDP))

	b.WriteString(m.styles.Secondary.Render(fmt.Sprintf("  %d ports", len(m.filtered))))
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("  Sort: %s", m.sortField)))

	line := b.String()
	rule := m.styles.Border.Render(strings.Repeat("─", max(m.width, 1)))
	return lipgloss.JoinVertical(lipgloss.Left, rule, line, rule)
}

func (m Model) protoIndicator(label string, on bool) string {
	if on {
		return m.styles.Success.Render("[" + label + " ✓]")
	}
	return m.styles.Muted.Render("[" + label + " ✗]")
}

// renderTable renders the column header plus the filter view rows through
// the viewport so long lists scroll.
func (m Model) renderTable(width int) string {
	var header strings.Builder
	header.WriteString("  ")
	for i, label := range columnLabels {
		if i > 0 {
			header.WriteString(" ")
		}
		header.WriteString(m.styles.Secondary.Bold(true).Render(padRight(label, columnWidths[i])))
	}

	var rows strings.Builder
	for viewIdx, entryIdx := range m.filtered {
		rows.WriteString(m.renderRow(&m.entries[entryIdx], viewIdx == m.cursor))
		rows.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		rows.WriteString(m.styles.Muted.Italic(true).Render("  no listening ports match"))
	}

	vp := m.viewport
	vp.Width = width
	vp.SetContent(rows.String())
	m.scrollToCursor(&vp)

	return lipgloss.JoinVertical(lipgloss.Left, header.String(), vp.View())
}

// scrollToCursor keeps the selected row inside the viewport.
func (m Model) scrollToCursor(vp *viewport.Model) {
	if m.cursor == noSelection {
		return
	}
	if m.cursor < vp.YOffset {
		vp.SetYOffset(m.cursor)
	} else if m.cursor >= vp.YOffset+vp.Height {
		vp.SetYOffset(m.cursor - vp.Height + 1)
	}
}

// renderRow renders one entry as a table row.
func (m Model) renderRow(e *model.PortEntry, selected bool) string {
	catStyle := m.styles.CategoryStyle(e.Category)
	service := e.Service
	if service == "" {
		service = "—"
	}

	cells := []string{
		m.styles.Text.Render(padRight(fmt.Sprintf("%d", e.Port), columnWidths[0])),
		m.styles.Secondary.Render(padRight(string(e.Protocol), columnWidths[1])),
		catStyle.Render(padRight(e.ProcessName, columnWidths[2])),
		catStyle.Render(padRight(service, columnWidths[3])),
		m.styles.Muted.Render(padRight(fmt.Sprintf("%d", e.PID), columnWidths[4])),
		m.styles.CPUStyle(e.CPUPercent).Render(padRight(formatCPU(e.CPUPercent), columnWidths[5])),
		m.styles.Text.Render(padRight(e.MemoryDisplay(), columnWidths[6])),
		m.styles.Muted.Render(padRight(e.UptimeDisplay(), columnWidths[7])),
	}

	row := "  " + strings.Join(cells, " ")
	if selected {
		plain := m.plainRow(e, service)
		return m.styles.Selected.Render("▸ " + plain)
	}
	if m.highlightChanges {
		if _, ok := m.added[e.EntryKey()]; ok {
			return m.styles.Added.Render("+ " + m.plainRow(e, service))
		}
	}
	return row
}

// plainRow renders the row without per-cell colors, for selection and
// highlight styles that own the whole line.
func (m Model) plainRow(e *model.PortEntry, service string) string {
	cells := []string{
		padRight(fmt.Sprintf("%d", e.Port), columnWidths[0]),
		padRight(string(e.Protocol), columnWidths[1]),
		padRight(e.ProcessName, columnWidths[2]),
		padRight(service, columnWidths[3]),
		padRight(fmt.Sprintf("%d", e.PID), columnWidths[4]),
		padRight(formatCPU(e.CPUPercent), columnWidths[5]),
		padRight(e.MemoryDisplay(), columnWidths[6]),
		padRight(e.UptimeDisplay(), columnWidths[7]),
	}
	return strings.Join(cells, " ")
}

// renderDetail shows the full record for the selected entry.
func (m Model) renderDetail(width int) string {
	entry := m.selectedEntry()
	if entry == nil {
		return m.styles.Muted.Italic(true).Render("  no port selected")
	}

	label := func(s string) string { return m.styles.Secondary.Render(s) }
	var lines []string
	lines = append(lines,
		label("Port:    ")+m.styles.Text.Bold(true).Render(fmt.Sprintf("%d (%s)", entry.Port, entry.Protocol)),
		label("Address: ")+m.styles.Text.Render(entry.AddrDisplay()),
		label("Process: ")+m.styles.CategoryStyle(entry.Category).Render(entry.ProcessName),
		label("PID:     ")+m.styles.Text.Render(fmt.Sprintf("%d", entry.PID)),
	)

	service := entry.Service
	if service == "" {
		service = "Unknown"
	}
	lines = append(lines,
		label("Service: ")+m.styles.CategoryStyle(entry.Category).Render(service),
		label("Category:")+" "+m.styles.Text.Render(entry.Category.String()),
	)

	if entry.Container != nil {
		lines = append(lines,
			label("Container: ")+m.styles.Text.Render(
				fmt.Sprintf("%s (%s)", entry.Container.Name, entry.Container.Image)),
		)
	}

	lines = append(lines,
		"",
		label("CPU:     ")+m.styles.Text.Render(formatCPU(entry.CPUPercent)),
		label("Memory:  ")+m.styles.Text.Render(entry.MemoryDisplay()),
		label("Uptime:  ")+m.styles.Text.Render(entry.UptimeDisplay()),
		"",
		label("Command:"),
		m.styles.Muted.Render(truncate(entry.ProcessCmd, width*3)),
	)

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width - 2).
		Padding(0, 1).
		Render(body)
}

// renderConfirm renders the kill confirmation dialog in place of the table.
// Confirmation owns the screen until answered.
func (m Model) renderConfirm() string {
	entry := m.entryAt(m.confirmTarget)
	if entry == nil {
		return ""
	}

	text := lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.styles.Error.Render("  Kill ")+
			m.styles.Text.Bold(true).Render(entry.ProcessName)+
			m.styles.Secondary.Render(fmt.Sprintf(" (PID %d) on port %d?", entry.PID, entry.Port)),
		m.styles.Muted.Render("  y = confirm, any other key = cancel"),
		"",
	)

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Error.GetForeground()).
		Padding(0, 1).
		Render(text)

	height := m.height - headerHeight - footerHeight
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, dialog)
}

// renderFooter shows an unexpired status message, or the shortcut help.
func (m Model) renderFooter() string {
	rule := m.styles.Border.Render(strings.Repeat("─", max(m.width, 1)))

	if status := m.currentStatus(); status != "" {
		return lipgloss.JoinVertical(lipgloss.Left, rule, m.styles.Success.Render(" "+status))
	}

	shortcuts := []struct{ key, desc string }{
		{"/", "Filter"},
		{"^X", "Kill"},
		{"^K", "Force"},
		{"^D", "Detail"},
		{"^S", "Sort"},
		{"^T", "Proto"},
		{"^R", "Refresh"},
		{"^Q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(" ")
	for _, s := range shortcuts {
		b.WriteString(m.styles.Key.Render(s.key))
		b.WriteString(m.styles.Muted.Render(" " + s.desc + "  "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rule, b.String())
}
