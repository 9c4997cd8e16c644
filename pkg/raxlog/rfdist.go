package raxlog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raxlog/raxlog-go/internal/raxmlng"
)

// DefaultExecutable is the raxml-ng binary used when no explicit path
// is configured, resolved via PATH.
const DefaultExecutable = "raxml-ng"

// RFDistanceTool computes Robinson-Foulds distances over a file of
// newline-separated Newick trees. The production implementation shells
// out to raxml-ng; tests substitute a stub.
type RFDistanceTool interface {
	RFDistance(ctx context.Context, treesFile string) (absolute int, relative float64, uniqueTopologies int, err error)
}

// RFOption configures RelativeRFDistance.
type RFOption func(*rfConfig)

type rfConfig struct {
	executable string
	tool       RFDistanceTool
}

func defaultRFConfig() *rfConfig {
	return &rfConfig{executable: DefaultExecutable}
}

// WithExecutable sets the raxml-ng binary to invoke.
// Default: "raxml-ng" from PATH.
func WithExecutable(path string) RFOption {
	return func(c *rfConfig) {
		if path != "" {
			c.executable = path
		}
	}
}

// WithRFDistanceTool substitutes the tool used to compute distances.
// When set, WithExecutable has no effect.
func WithRFDistanceTool(t RFDistanceTool) RFOption {
	return func(c *rfConfig) {
		if t != nil {
			c.tool = t
		}
	}
}

// RelativeRFDistance computes the relative Robinson-Foulds distance
// between a starting and a final tree topology by delegating to
// raxml-ng. Both trees are staged into one temporary file, which is
// removed on every exit path, including tool failure. Identical
// topologies yield 0.0.
//
// The distance itself is entirely the tool's: this function only
// stages input and scopes cleanup, and any tool error propagates
// unchanged.
func RelativeRFDistance(ctx context.Context, startingNewick, finalNewick string, opts ...RFOption) (float64, error) {
	cfg := defaultRFConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	tool := cfg.tool
	if tool == nil {
		tool = raxmlng.New(cfg.executable)
	}

	dir, err := os.MkdirTemp("", "raxlog-rfdist-")
	if err != nil {
		return 0, fmt.Errorf("creating temporary directory: %w", err)
	}
	defer os.RemoveAll(dir)

	treesFile := filepath.Join(dir, "pair.trees")
	content := strings.TrimSpace(startingNewick) + "\n" + strings.TrimSpace(finalNewick) + "\n"
	if err := os.WriteFile(treesFile, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("writing trees file: %w", err)
	}

	_, relative, _, err := tool.RFDistance(ctx, treesFile)
	if err != nil {
		return 0, err
	}
	return relative, nil
}
