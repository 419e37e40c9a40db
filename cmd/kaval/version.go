package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaval-sh/kaval/internal/release"
)

// version is set at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kaval version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kaval %s\n", version)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		latest, err := release.NewChecker().Latest(ctx, version)
		if err != nil || latest == "" {
			return // offline or up to date, nothing to say
		}
		fmt.Printf("A newer release is available: %s\n", latest)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
