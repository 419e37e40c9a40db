package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kaval-sh/kaval/internal/output"
)

var (
	listTCP bool
	listUDP bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List listening ports once and exit",
	Long: `Print every listening port with its owning process, then exit.

Examples:
  kaval list              # table of all TCP and UDP listeners
  kaval list --tcp        # TCP only
  kaval list --json       # JSON for scripting`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listTCP, "tcp", false, "Show TCP listeners only")
	listCmd.Flags().BoolVar(&listUDP, "udp", false, "Show UDP listeners only")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	settings := loadSettings()

	includeTCP, includeUDP := settings.ShowTCP, settings.ShowUDP
	if listTCP || listUDP {
		includeTCP, includeUDP = listTCP, listUDP
	}

	entries, err := scanOnce(settings, includeTCP, includeUDP)
	if err != nil {
		return err
	}

	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		return output.RenderJSON(os.Stdout, entries)
	}
	output.RenderTable(os.Stdout, entries)
	return nil
}
