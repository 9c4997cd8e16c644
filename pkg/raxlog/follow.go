package raxlog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/raxlog/raxlog-go/internal/tailer"
)

// followErrBuffer is the buffer size for the error channel. A small
// buffer prevents error loss during brief moments when the consumer is
// busy, while keeping memory usage minimal.
const followErrBuffer = 16

// FollowOption configures Follow using the functional options pattern.
type FollowOption func(*followConfig)

type followConfig struct {
	fromStart  bool
	includeRaw bool
	logger     *slog.Logger
}

func defaultFollowConfig() *followConfig {
	return &followConfig{logger: discardLogger}
}

// WithFollowFromStart replays the whole log before tailing new lines.
// Default: only new lines are reported (tail -f behavior).
func WithFollowFromStart() FollowOption {
	return func(c *followConfig) {
		c.fromStart = true
	}
}

// WithFollowIncludeRawLine includes the original log line in
// Event.RawLine. Default: false.
func WithFollowIncludeRawLine(include bool) FollowOption {
	return func(c *followConfig) {
		c.includeRaw = include
	}
}

// WithFollowLogger sets a logger for debug output.
// If logger is nil, logging is disabled (default behavior).
func WithFollowLogger(logger *slog.Logger) FollowOption {
	return func(c *followConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Follow tails a RAxML-NG log file and reports progress events on the
// returned channel as the inference writes them. Both channels close
// when ctx is cancelled or the tailer stops.
//
// Malformed progress lines are reported on the error channel and do
// not stop the follow; the caller decides whether they matter.
func Follow(ctx context.Context, path string, opts ...FollowOption) (<-chan Event, <-chan error, error) {
	cfg := defaultFollowConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	t, err := tailer.New(ctx, path, tailer.Config{FromStart: cfg.fromStart})
	if err != nil {
		return nil, nil, err
	}
	cfg.logger.Debug("started following", "path", path, "from_start", cfg.fromStart)

	eventCh := make(chan Event)
	errCh := make(chan error, followErrBuffer)

	go func() {
		defer close(eventCh)
		defer close(errCh)
		defer func() { _ = t.Stop() }()

		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.Lines():
				if !ok {
					return
				}
				ev, matched, err := classifyLine(strings.TrimSpace(line))
				if err != nil {
					sendFollowError(ctx, errCh, &ParseError{Path: path, Line: line, Cause: err})
					continue
				}
				if !matched {
					continue
				}
				if cfg.includeRaw {
					ev.RawLine = line
				}
				select {
				case eventCh <- ev:
				case <-ctx.Done():
					return
				}
			case err, ok := <-t.Errors():
				if !ok {
					return
				}
				sendFollowError(ctx, errCh, err)
			}
		}
	}()

	return eventCh, errCh, nil
}

// sendFollowError sends an error without blocking shutdown. Errors are
// dropped only when the buffer is full.
func sendFollowError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
	default:
	}
}
