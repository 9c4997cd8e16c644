// Command raxlog extracts structured metrics from RAxML-NG log files.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "raxlog",
	Short: "Extract metrics from RAxML-NG tree-search logs",
	Long: `raxlog reads the log files RAxML-NG writes during tree inference and
turns them into structured metrics: log-likelihoods, runtimes, SPR
round counts, parsimony scores, model parameter estimates, and
alignment statistics.

Subcommands:
  extract   Extract metrics from finished runs
  scan      Index a directory of logs into a SQLite database
  follow    Stream progress events from a running inference
  rfdist    Relative Robinson-Foulds distance between two trees`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose diagnostics on stderr")
}

// newLogger builds the diagnostics logger shared by all subcommands.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
