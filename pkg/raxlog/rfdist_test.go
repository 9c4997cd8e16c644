package raxlog_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

// stubTool records its invocation and returns canned distances.
// Identical trees in the staged file yield zero distance.
type stubTool struct {
	treesFile string
	content   string
	err       error
}

func (s *stubTool) RFDistance(ctx context.Context, treesFile string) (int, float64, int, error) {
	s.treesFile = treesFile
	data, err := os.ReadFile(treesFile)
	if err != nil {
		return 0, 0, 0, err
	}
	s.content = string(data)
	if s.err != nil {
		return 0, 0, 0, s.err
	}

	lines := strings.Split(strings.TrimSpace(s.content), "\n")
	if len(lines) == 2 && lines[0] == lines[1] {
		return 0, 0.0, 1, nil
	}
	return 6, 0.333333, 2, nil
}

const (
	treeA = "((A,B),(C,D));"
	treeB = "((A,C),(B,D));"
)

func TestRelativeRFDistance_IdenticalTrees(t *testing.T) {
	tool := &stubTool{}
	dist, err := raxlog.RelativeRFDistance(context.Background(), treeA, treeA,
		raxlog.WithRFDistanceTool(tool))
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist)
}

func TestRelativeRFDistance_DifferentTrees(t *testing.T) {
	tool := &stubTool{}
	dist, err := raxlog.RelativeRFDistance(context.Background(), treeA, treeB,
		raxlog.WithRFDistanceTool(tool))
	require.NoError(t, err)
	assert.Equal(t, 0.333333, dist)
}

func TestRelativeRFDistance_StagesTrimmedTrees(t *testing.T) {
	tool := &stubTool{}
	_, err := raxlog.RelativeRFDistance(context.Background(),
		"  "+treeA+"\n", "\t"+treeB+" ",
		raxlog.WithRFDistanceTool(tool))
	require.NoError(t, err)

	// One file, both trees, newline-separated, whitespace trimmed.
	assert.Equal(t, treeA+"\n"+treeB+"\n", tool.content)
}

func TestRelativeRFDistance_CleansUpTempFile(t *testing.T) {
	tool := &stubTool{}
	_, err := raxlog.RelativeRFDistance(context.Background(), treeA, treeB,
		raxlog.WithRFDistanceTool(tool))
	require.NoError(t, err)

	_, statErr := os.Stat(tool.treesFile)
	assert.True(t, os.IsNotExist(statErr), "temporary trees file must be removed")
}

func TestRelativeRFDistance_CleansUpOnToolFailure(t *testing.T) {
	toolErr := errors.New("raxml-ng exploded")
	tool := &stubTool{err: toolErr}

	_, err := raxlog.RelativeRFDistance(context.Background(), treeA, treeB,
		raxlog.WithRFDistanceTool(tool))
	require.ErrorIs(t, err, toolErr, "tool errors propagate unchanged")

	_, statErr := os.Stat(tool.treesFile)
	assert.True(t, os.IsNotExist(statErr), "cleanup must run on the error path too")
}
