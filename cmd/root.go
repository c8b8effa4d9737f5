// Package cmd defines and implements the CLI commands for the tablepull executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tablepull",
		Short: "Pulls statistical tables from the SCB PXWeb API.",
		Long: `tablepull retrieves a statistical table from the Statistics Sweden
(SCB) PXWeb API and reshapes the response into a cleaned tabular file on
disk. Each run issues a single POST described by a query spec file and
branches on the declared response format: CSV responses are normalized,
PC-Axis responses are saved verbatim, and anything else is printed to
standard output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults plus TABLEPULL_* environment variables)")

	cmd.AddCommand(newPullCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
