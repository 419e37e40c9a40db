package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds user-configurable options.
type Settings struct {
	RefreshSeconds   int  `yaml:"refreshSeconds"`   // auto-refresh interval for the TUI
	ShowTCP          bool `yaml:"showTCP"`          // initial TCP visibility
	ShowUDP          bool `yaml:"showUDP"`          // initial UDP visibility
	DockerContainers bool `yaml:"dockerContainers"` // resolve published ports to containers
	HighlightChanges bool `yaml:"highlightChanges"` // mark entries that appeared since the last scan
}

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		RefreshSeconds:   2,
		ShowTCP:          true,
		ShowUDP:          true,
		DockerContainers: true,
		HighlightChanges: true,
	}
}

// RefreshInterval returns the auto-refresh interval, falling back to the
// default when the configured value is unusable.
func (s *Settings) RefreshInterval() time.Duration {
	if s.RefreshSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.RefreshSeconds) * time.Second
}

// settingsPath returns the path to the settings file.
func settingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "kaval", "settings.yaml"), nil
}

// LoadSettings loads settings from disk, returning defaults if not found.
func LoadSettings() (*Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return DefaultSettings(), nil
	}

	// #nosec G304 - path is constructed from trusted sources
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parse %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings writes settings to disk.
func SaveSettings(s *Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
