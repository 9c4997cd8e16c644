package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleMetrics(path string) *raxlog.RunMetrics {
	starting := -8735.928562
	return &raxlog.RunMetrics{
		Path:                  path,
		FinalLogLikelihood:    -8245.101,
		BestLogLikelihood:     -8240.880,
		LogLikelihoods:        []float64{-8245.101, -8240.880},
		StartingLogLikelihood: &starting,
		ElapsedSeconds:        310.442,
		Runtimes:              []float64{310.442},
		SlowSprRounds:         1,
		FastSprRounds:         2,
		ParsimonyScores:       []int{4512},
		Model: raxlog.ModelParameters{
			RateHeterogeneity: "GAMMA (4 cats, mean),  alpha: 0.981000 (ML)",
			BaseFrequencies:   "0.288462 0.227845 0.217556 0.266137",
		},
		Alignment: &raxlog.AlignmentStats{
			Patterns:  933,
			Gaps:      0.125,
			Invariant: 0.40,
		},
	}
}

func TestStore_UpsertAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sampleMetrics("/runs/t1.raxml.log")
	require.NoError(t, s.Upsert(ctx, want))

	got, err := s.Get(ctx, "/runs/t1.raxml.log")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_UpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m := sampleMetrics("/runs/t1.raxml.log")
	require.NoError(t, s.Upsert(ctx, m))

	m.BestLogLikelihood = -8200.0
	m.LogLikelihoods = append(m.LogLikelihoods, -8200.0)
	require.NoError(t, s.Upsert(ctx, m))

	got, err := s.Get(ctx, m.Path)
	require.NoError(t, err)
	assert.Equal(t, -8200.0, got.BestLogLikelihood)
	assert.Len(t, got.LogLikelihoods, 3)
}

func TestStore_NullableFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A restarted, search-only run: no starting LLH, no alignment
	// section, no parsimony scores.
	m := &raxlog.RunMetrics{
		Path:               "/runs/restarted.raxml.log",
		FinalLogLikelihood: -100.0,
		BestLogLikelihood:  -100.0,
		LogLikelihoods:     []float64{-100.0},
		ElapsedSeconds:     91413.668,
		Runtimes:           []float64{91413.668},
	}
	require.NoError(t, s.Upsert(ctx, m))

	got, err := s.Get(ctx, m.Path)
	require.NoError(t, err)
	assert.Nil(t, got.StartingLogLikelihood)
	assert.Nil(t, got.Alignment)
	assert.Empty(t, got.ParsimonyScores)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "/runs/absent.raxml.log")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStore_ListOrdersByBestLLH(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	worse := sampleMetrics("/runs/worse.raxml.log")
	worse.BestLogLikelihood = -9000.0
	better := sampleMetrics("/runs/better.raxml.log")
	better.BestLogLikelihood = -8000.0

	require.NoError(t, s.Upsert(ctx, worse))
	require.NoError(t, s.Upsert(ctx, better))

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "/runs/better.raxml.log", runs[0].Path)
	assert.Equal(t, "/runs/worse.raxml.log", runs[1].Path)
}
