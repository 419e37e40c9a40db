package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kaval-sh/kaval/internal/config"
	"github.com/kaval-sh/kaval/internal/docker"
	"github.com/kaval-sh/kaval/internal/model"
	"github.com/kaval-sh/kaval/internal/output"
	"github.com/kaval-sh/kaval/internal/scanner"
	"github.com/kaval-sh/kaval/internal/ui"
)

// scanTimeout bounds a one-shot scan.
const scanTimeout = 10 * time.Second

var jsonOutput bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripting/agent consumption)")
}

var rootCmd = &cobra.Command{
	Use:   "kaval [port]",
	Short: "Guard your ports - inspect and manage listening ports",
	Long: `kaval is a TUI for inspecting which processes hold which listening ports,
and for shutting them down.

Optionally pass a port number to filter the view:
  kaval 8080        # TUI filtered to port 8080
  kaval 8080 --json # JSON output filtered to port 8080`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var portFilter string
		if len(args) > 0 {
			if _, err := parsePort(args[0]); err != nil {
				return err
			}
			portFilter = args[0]
		}

		settings := loadSettings()

		// JSON mode: explicit flag or non-TTY stdout.
		if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
			entries, err := scanOnce(settings, settings.ShowTCP, settings.ShowUDP)
			if err != nil {
				return err
			}
			if portFilter != "" {
				port, _ := parsePort(portFilter)
				entries = scanner.FilterByPort(entries, port)
			}
			return output.RenderJSON(os.Stdout, entries)
		}

		m := ui.NewModel(newScanner(settings), settings, config.LoadTheme())
		if portFilter != "" {
			m = m.WithFilter(portFilter)
		}
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run session: %w", err)
		}
		return nil
	},
}

// loadSettings reads the user settings, falling back to defaults when the
// file is unreadable. A broken settings file never blocks startup.
func loadSettings() *config.Settings {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return config.DefaultSettings()
	}
	return settings
}

func newScanner(settings *config.Settings) *scanner.Scanner {
	var resolver docker.Resolver
	if settings.DockerContainers {
		resolver = docker.NewResolver()
	}
	return scanner.New(resolver)
}

// scanOnce runs a single scan for the one-shot commands.
func scanOnce(settings *config.Settings, includeTCP, includeUDP bool) ([]model.PortEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	entries, err := newScanner(settings).Scan(ctx, includeTCP, includeUDP)
	if err != nil {
		return nil, fmt.Errorf("scan ports: %w", err)
	}
	return entries, nil
}

// parsePort validates a port argument.
func parsePort(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid port: %s", s)
	}
	return uint32(n), nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
