package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

// main wires the CLI. serve runs the HTTP API with the sync scheduler;
// sync performs one catalog sync and exits.
func main() {
	rootCmd := &cobra.Command{
		Use:           "psp-catalog",
		Short:         "PSP catalog lookup service and upstream feed synchronizer",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(syncCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
