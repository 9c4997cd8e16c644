package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

var rfdistExecutable string

var rfdistCmd = &cobra.Command{
	Use:   "rfdist <starting-tree-file> <final-tree-file>",
	Short: "Relative Robinson-Foulds distance between two Newick trees",
	Long: `Compute the relative Robinson-Foulds distance between a starting and a
final tree topology by delegating to raxml-ng --rfdist. Each argument
is a file containing one Newick tree.

Identical topologies yield 0.0; fully discordant ones 1.0.

Example:
  raxlog rfdist start.raxml.startTree search.raxml.bestTree`,
	Args: cobra.ExactArgs(2),
	RunE: runRFDist,
}

func init() {
	rfdistCmd.Flags().StringVar(&rfdistExecutable, "raxml-ng", raxlog.DefaultExecutable,
		"Path to the raxml-ng executable")
	rootCmd.AddCommand(rfdistCmd)
}

func runRFDist(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	starting, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading starting tree: %w", err)
	}
	final, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading final tree: %w", err)
	}

	dist, err := raxlog.RelativeRFDistance(ctx, string(starting), string(final),
		raxlog.WithExecutable(rfdistExecutable))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g\n", dist)
	return err
}
