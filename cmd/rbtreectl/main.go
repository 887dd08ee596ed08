// Package main provides the entry point for the rbtreectl CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redblack-systems/rbtree/cmd/rbtreectl/commands"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rbtreectl",
		Short: "rbtreectl - inspect, benchmark, and serve red-black tree arenas",
		Long: `rbtreectl drives the arena-backed red-black tree: build one from a
key stream, inspect its shape, benchmark insert/erase throughput, or serve
its metrics over HTTP.

Commands:
  build     Build a tree from a key stream and report its shape
  inspect   Load a hibernated arena and report its shape
  bench     Run a randomized insert/erase workload and report throughput
  serve     Run a synthetic workload while exposing Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "accepted; no subcommand reads it")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "accepted; no subcommand reads it, output is not suppressed")

	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewBenchCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, "rbtreectl dev")
		},
	}
}
