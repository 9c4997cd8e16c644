package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raxlog/raxlog-go/internal/logfinder"
	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

var (
	followDir       string
	followFormat    string
	followFromStart bool
	followRaw       bool
)

var followCmd = &cobra.Command{
	Use:   "follow [log-file]",
	Short: "Stream progress events from a running inference",
	Long: `Follow a RAxML-NG log as the inference writes it and output progress
events: the starting log-likelihood, SPR rounds, parsimony scores,
final log-likelihoods, and elapsed time.

Events are output as JSON Lines by default (one JSON object per line).

Examples:
  # Follow a specific log
  raxlog follow search.raxml.log

  # Follow the most recent log in a run directory
  raxlog follow --dir experiments/run42/

  # Replay the whole log first, human-readable
  raxlog follow --from-start --format pretty search.raxml.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFollow,
}

func init() {
	followCmd.Flags().StringVarP(&followDir, "dir", "d", "",
		"Run directory; follow its most recently modified *.raxml.log")
	followCmd.Flags().StringVarP(&followFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	followCmd.Flags().BoolVar(&followFromStart, "from-start", false,
		"Replay the whole log before tailing new lines")
	followCmd.Flags().BoolVar(&followRaw, "raw", false,
		"Include raw log lines in output")
	rootCmd.AddCommand(followCmd)
}

func runFollow(cmd *cobra.Command, args []string) error {
	if !ValidEventFormats[followFormat] {
		return fmt.Errorf("unknown format: %s", followFormat)
	}

	path, err := followTarget(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []raxlog.FollowOption{
		raxlog.WithFollowLogger(newLogger()),
		raxlog.WithFollowIncludeRawLine(followRaw),
	}
	if followFromStart {
		opts = append(opts, raxlog.WithFollowFromStart())
	}

	events, errs, err := raxlog.Follow(ctx, path, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := OutputEvent(followFormat, ev, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if verbose {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// followTarget resolves the log to follow from the positional argument
// or the --dir flag.
func followTarget(args []string) (string, error) {
	switch {
	case len(args) == 1 && followDir != "":
		return "", fmt.Errorf("pass either a log file or --dir, not both")
	case len(args) == 1:
		return args[0], nil
	case followDir != "":
		return logfinder.FindLatestLogFile(followDir)
	default:
		return "", fmt.Errorf("a log file argument or --dir is required")
	}
}
