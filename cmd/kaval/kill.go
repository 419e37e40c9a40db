package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kaval-sh/kaval/internal/docker"
	"github.com/kaval-sh/kaval/internal/model"
	"github.com/kaval-sh/kaval/internal/process"
	"github.com/kaval-sh/kaval/internal/scanner"
)

var (
	killForce  bool
	killSignal string
	killYes    bool
)

var killCmd = &cobra.Command{
	Use:   "kill <port>",
	Short: "Kill every process listening on a port",
	Long: `Kill the processes listening on the given port. Sends SIGTERM unless
--force or an explicit --signal is given.

Examples:
  kaval kill 8080
  kaval kill 8080 --force
  kaval kill 8080 --signal SIGHUP --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runKill,
}

func init() {
	killCmd.Flags().BoolVarP(&killForce, "force", "f", false, "Send SIGKILL instead of SIGTERM, skipping confirmation")
	killCmd.Flags().StringVarP(&killSignal, "signal", "s", "SIGTERM", "Signal to send (SIGTERM, SIGKILL, SIGHUP, SIGINT, SIGQUIT or 9/15)")
	killCmd.Flags().BoolVarP(&killYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(killCmd)
}

func runKill(cmd *cobra.Command, args []string) error {
	port, err := parsePort(args[0])
	if err != nil {
		return err
	}

	sig := syscall.SIGTERM
	if killForce {
		sig = syscall.SIGKILL
	}
	if cmd.Flags().Changed("signal") {
		s, ok := process.SignalMap[strings.ToUpper(killSignal)]
		if !ok {
			return fmt.Errorf("unknown signal: %s", killSignal)
		}
		sig = s
	}

	settings := loadSettings()
	entries, err := scanOnce(settings, true, true)
	if err != nil {
		return err
	}
	targets := uniquePIDs(scanner.FilterByPort(entries, port))

	if len(targets) == 0 {
		fmt.Printf("No processes listening on port %d\n", port)
		return nil
	}

	fmt.Println("Processes to kill:")
	for _, t := range targets {
		fmt.Printf("  PID %d (%s) on port %d/%s\n", t.PID, t.ProcessName, t.Port, t.Protocol)
	}
	fmt.Printf("Signal: %v\n", sig)

	if !killYes && !killForce && !confirm() {
		fmt.Println("Aborted")
		return nil
	}

	var killed, failed int
	for _, t := range targets {
		if err := killTarget(t, sig); err != nil {
			fmt.Printf("Failed to kill PID %d (%s): %v\n", t.PID, t.ProcessName, err)
			failed++
		} else {
			fmt.Printf("Killed PID %d (%s)\n", t.PID, t.ProcessName)
			killed++
		}
	}

	fmt.Printf("\nKilled: %d, Failed: %d\n", killed, failed)
	if failed > 0 {
		return fmt.Errorf("%d process(es) could not be killed", failed)
	}
	return nil
}

// killTarget signals a local process, or stops the owning container for
// daemon-proxied ports where signalling the PID would not free the port.
func killTarget(t model.PortEntry, sig syscall.Signal) error {
	if t.Container == nil {
		return process.Signal(t.PID, sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if sig == syscall.SIGKILL {
		return docker.KillContainer(ctx, t.Container.ID)
	}
	return docker.StopContainer(ctx, t.Container.ID, 5)
}

// uniquePIDs drops entries whose PID was already listed, so a process
// listening on both TCP and UDP is only signalled once.
func uniquePIDs(entries []model.PortEntry) []model.PortEntry {
	seen := make(map[int32]bool, len(entries))
	var out []model.PortEntry
	for _, e := range entries {
		if seen[e.PID] {
			continue
		}
		seen[e.PID] = true
		out = append(out, e)
	}
	return out
}

func confirm() bool {
	fmt.Print("\nProceed? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}
