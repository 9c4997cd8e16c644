package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

var extractFormat string

var extractCmd = &cobra.Command{
	Use:   "extract <log-file>...",
	Short: "Extract run metrics from RAxML-NG log files",
	Long: `Extract structured metrics from one or more finished RAxML-NG runs.

Metrics are output as JSON Lines by default (one JSON object per log),
which makes it easy to process with tools like jq.

Examples:
  # One run, human-readable
  raxlog extract --format pretty search.raxml.log

  # Many runs, piped to jq
  raxlog extract runs/*.raxml.log | jq '.best_llh'

  # YAML for a pipeline config
  raxlog extract --format yaml search.raxml.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "jsonl",
		"Output format: jsonl, yaml, pretty")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if !ValidFormats[extractFormat] {
		return fmt.Errorf("unknown format: %s", extractFormat)
	}

	ex := raxlog.New(raxlog.WithLogger(newLogger()))
	out := cmd.OutOrStdout()

	for _, path := range args {
		metrics, err := ex.ExtractRunMetrics(path)
		if err != nil {
			return err
		}
		if err := OutputMetrics(extractFormat, metrics, out); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}
