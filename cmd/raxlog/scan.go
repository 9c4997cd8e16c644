package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raxlog/raxlog-go/internal/logfinder"
	"github.com/raxlog/raxlog-go/internal/store"
	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

var scanDBPath string

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Index a directory of RAxML-NG logs into a SQLite database",
	Long: `Scan a directory for *.raxml.log files, extract run metrics from each,
and store them in a SQLite database for downstream analysis. Re-running
a scan replaces existing rows for the same log paths.

Logs that cannot be parsed are reported and skipped; the scan
continues with the remaining files.

Example:
  raxlog scan --db runs.db experiments/ebg-train/`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanDBPath, "db", "raxlog.db",
		"Path to the SQLite database to create or update")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	paths, err := logfinder.FindLogFiles(args[0])
	if err != nil {
		return fmt.Errorf("scanning %s: %w", args[0], err)
	}

	db, err := store.Open(scanDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ex := raxlog.New(raxlog.WithLogger(newLogger()))
	out := cmd.OutOrStdout()

	var indexed, failed int
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		metrics, err := ex.ExtractRunMetrics(path)
		if err != nil {
			fmt.Fprintf(out, "failed  %s: %v\n", path, err)
			failed++
			continue
		}
		if err := db.Upsert(ctx, metrics); err != nil {
			fmt.Fprintf(out, "failed  %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "indexed %s (best LLH %.3f)\n", path, metrics.BestLogLikelihood)
		indexed++
	}

	fmt.Fprintf(out, "\nindexed: %d, failed: %d\n", indexed, failed)
	return nil
}
