// Package cmd wires the otuflow command-line interface.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "otuflow",
	Short: "Run the OTU picking through OTU table workflow",
	Long: `otuflow orchestrates a fixed chain of bioinformatics tools: optional
denoising, OTU picking, representative set selection, alignment, taxonomy
assignment, alignment filtering, tree building and OTU table construction.

Each step writes into its own subdirectory of the output directory; a step's
declared output feeds the next step in the chain. The run stops at the first
failing step and leaves completed outputs in place.`,
	SilenceUsage: true,
}

// Execute runs the root command. Any error has already been printed by
// cobra; the process exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./otuflow.yaml)")
}
