package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kaval-sh/kaval/internal/output"
	"github.com/kaval-sh/kaval/internal/scanner"
)

var checkCmd = &cobra.Command{
	Use:   "check <port>",
	Short: "Show what is listening on a port",
	Long: `Show every process listening on the given port, with CPU, memory,
uptime and the full command line.

Examples:
  kaval check 5432
  kaval check 8080 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}

	settings := loadSettings()
	entries, err := scanOnce(settings, true, true)
	if err != nil {
		return err
	}
	matches := scanner.FilterByPort(entries, port)

	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		return output.RenderJSON(os.Stdout, matches)
	}

	if len(matches) == 0 {
		fmt.Printf("Nothing listening on port %d\n", port)
		return nil
	}
	for i := range matches {
		if i > 0 {
			fmt.Println()
		}
		output.RenderDetail(os.Stdout, &matches[i])
	}
	return nil
}
