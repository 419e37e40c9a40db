package config

import (
	"embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed skins/emerald.yaml
var defaultSkin embed.FS

// Color represents a hex color string.
type Color string

// Palette holds the base colors shared across the UI.
type Palette struct {
	Primary       Color `yaml:"primary"`
	Border        Color `yaml:"border"`
	Text          Color `yaml:"text"`
	TextSecondary Color `yaml:"textSecondary"`
	TextMuted     Color `yaml:"textMuted"`
	Success       Color `yaml:"success"`
	Warning       Color `yaml:"warning"`
	Error         Color `yaml:"error"`
	SelectionFg   Color `yaml:"selectionFg"`
	SelectionBg   Color `yaml:"selectionBg"`
	Added         Color `yaml:"added"` // entries that appeared since the last scan
}

// CategoryColors holds one color per service category.
type CategoryColors struct {
	DevServer Color `yaml:"devServer"`
	Database  Color `yaml:"database"`
	Cache     Color `yaml:"cache"`
	Container Color `yaml:"container"`
	Browser   Color `yaml:"browser"`
	System    Color `yaml:"system"`
}

// Theme is the top-level theme configuration. It is loaded once at startup
// and passed explicitly to the UI; nothing lazily initializes it.
type Theme struct {
	Name       string         `yaml:"name"`
	Palette    Palette        `yaml:"palette"`
	Categories CategoryColors `yaml:"categories"`
}

// DefaultTheme returns the built-in emerald theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "emerald",
		Palette: Palette{
			Primary:       "#10b981",
			Border:        "#3c3c41",
			Text:          "#dcdcdc",
			TextSecondary: "#8c8c91",
			TextMuted:     "#505055",
			Success:       "#22c55e",
			Warning:       "#eab308",
			Error:         "#ef4444",
			SelectionFg:   "#ffffff",
			SelectionBg:   "#1e406e",
			Added:         "#3fb950",
		},
		Categories: CategoryColors{
			DevServer: "#22c55e",
			Database:  "#eab308",
			Cache:     "#a855f7",
			Container: "#60a5fa",
			Browser:   "#fb923c",
			System:    "#8c8c91",
		},
	}
}

// LoadTheme loads a theme from the user's config directory, falling back
// to the embedded default skin.
func LoadTheme() *Theme {
	if configDir, err := os.UserConfigDir(); err == nil {
		userSkinPath := filepath.Join(configDir, "kaval", "skin.yaml")
		// #nosec G304 - path is constructed from trusted sources
		if data, err := os.ReadFile(userSkinPath); err == nil {
			var theme Theme
			if err := yaml.Unmarshal(data, &theme); err == nil {
				return &theme
			}
		}
	}

	data, err := defaultSkin.ReadFile("skins/emerald.yaml")
	if err != nil {
		return DefaultTheme()
	}

	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return DefaultTheme()
	}
	return &theme
}
