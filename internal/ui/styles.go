package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kaval-sh/kaval/internal/config"
	"github.com/kaval-sh/kaval/internal/model"
)

// Styles holds every lipgloss style the session renders with. It is built
// once from the loaded theme and passed around by value; rendering never
// reaches into package-level state.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Text       lipgloss.Style
	Secondary  lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Border     lipgloss.Style
	Selected   lipgloss.Style
	Added      lipgloss.Style
	FilterText lipgloss.Style
	Key        lipgloss.Style

	categories config.CategoryColors
	text       config.Color
}

// NewStyles builds the style set for a theme.
func NewStyles(theme *config.Theme) Styles {
	p := theme.Palette
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(string(p.Primary))),
		Subtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.TextMuted))),
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Text))),
		Secondary:  lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.TextSecondary))),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.TextMuted))),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Success))),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Warning))),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(string(p.Error))),
		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Border))),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(string(p.SelectionFg))).Background(lipgloss.Color(string(p.SelectionBg))),
		Added:      lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Added))),
		FilterText: lipgloss.NewStyle().Foreground(lipgloss.Color(string(p.Primary))),
		Key:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(string(p.Text))),

		categories: theme.Categories,
		text:       p.Text,
	}
}

// CategoryColor maps a service category to its theme color. The switch is
// exhaustive over the category enum; Unknown renders as plain text.
func (s Styles) CategoryColor(cat model.ServiceCategory) lipgloss.Color {
	var c config.Color
	switch cat {
	case model.CategoryDevServer:
		c = s.categories.DevServer
	case model.CategoryDatabase:
		c = s.categories.Database
	case model.CategoryCache:
		c = s.categories.Cache
	case model.CategoryContainer:
		c = s.categories.Container
	case model.CategoryBrowser:
		c = s.categories.Browser
	case model.CategorySystem:
		c = s.categories.System
	case model.CategoryUnknown:
		c = s.text
	default:
		c = s.text
	}
	return lipgloss.Color(string(c))
}

// CategoryStyle returns a style colored for the category.
func (s Styles) CategoryStyle(cat model.ServiceCategory) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.CategoryColor(cat))
}

// CPUStyle colors a CPU percentage: hot values stand out.
func (s Styles) CPUStyle(percent float64) lipgloss.Style {
	switch {
	case percent > 50:
		return s.Error
	case percent > 20:
		return s.Warning
	default:
		return s.Text
	}
}
