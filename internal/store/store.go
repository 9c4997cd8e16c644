// Package store persists extracted run metrics in a SQLite database
// for downstream analysis of tree-search runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

// Store manages the run-metrics SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the metrics database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			path TEXT PRIMARY KEY,
			final_llh REAL NOT NULL,
			best_llh REAL NOT NULL,
			all_llhs TEXT NOT NULL,
			starting_llh REAL,
			elapsed_seconds REAL NOT NULL,
			runtimes TEXT NOT NULL,
			slow_spr_rounds INTEGER NOT NULL,
			fast_spr_rounds INTEGER NOT NULL,
			parsimony_scores TEXT,
			rate_heterogeneity TEXT,
			base_frequencies TEXT,
			substitution_rates TEXT,
			patterns INTEGER,
			gaps REAL,
			invariant REAL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_best_llh ON runs(best_llh)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert inserts or replaces the metrics row for m.Path.
func (s *Store) Upsert(ctx context.Context, m *raxlog.RunMetrics) error {
	llhsJSON, err := json.Marshal(m.LogLikelihoods)
	if err != nil {
		return fmt.Errorf("encoding log-likelihoods: %w", err)
	}
	runtimesJSON, err := json.Marshal(m.Runtimes)
	if err != nil {
		return fmt.Errorf("encoding runtimes: %w", err)
	}
	parsimonyJSON, err := json.Marshal(m.ParsimonyScores)
	if err != nil {
		return fmt.Errorf("encoding parsimony scores: %w", err)
	}

	var startingLLH sql.NullFloat64
	if m.StartingLogLikelihood != nil {
		startingLLH = sql.NullFloat64{Float64: *m.StartingLogLikelihood, Valid: true}
	}

	var patterns sql.NullInt64
	var gaps, invariant sql.NullFloat64
	if m.Alignment != nil {
		patterns = sql.NullInt64{Int64: int64(m.Alignment.Patterns), Valid: true}
		gaps = sql.NullFloat64{Float64: m.Alignment.Gaps, Valid: true}
		invariant = sql.NullFloat64{Float64: m.Alignment.Invariant, Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (
			path, final_llh, best_llh, all_llhs, starting_llh,
			elapsed_seconds, runtimes, slow_spr_rounds, fast_spr_rounds,
			parsimony_scores, rate_heterogeneity, base_frequencies,
			substitution_rates, patterns, gaps, invariant, indexed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			final_llh=excluded.final_llh, best_llh=excluded.best_llh,
			all_llhs=excluded.all_llhs, starting_llh=excluded.starting_llh,
			elapsed_seconds=excluded.elapsed_seconds, runtimes=excluded.runtimes,
			slow_spr_rounds=excluded.slow_spr_rounds,
			fast_spr_rounds=excluded.fast_spr_rounds,
			parsimony_scores=excluded.parsimony_scores,
			rate_heterogeneity=excluded.rate_heterogeneity,
			base_frequencies=excluded.base_frequencies,
			substitution_rates=excluded.substitution_rates,
			patterns=excluded.patterns, gaps=excluded.gaps,
			invariant=excluded.invariant, indexed_at=excluded.indexed_at`,
		m.Path, m.FinalLogLikelihood, m.BestLogLikelihood, string(llhsJSON), startingLLH,
		m.ElapsedSeconds, string(runtimesJSON), m.SlowSprRounds, m.FastSprRounds,
		string(parsimonyJSON), m.Model.RateHeterogeneity, m.Model.BaseFrequencies,
		m.Model.SubstitutionRates, patterns, gaps, invariant,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting run %s: %w", m.Path, err)
	}
	return nil
}

// Get returns the stored metrics for a log path, or sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, path string) (*raxlog.RunMetrics, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT path, final_llh, best_llh, all_llhs, starting_llh,
			elapsed_seconds, runtimes, slow_spr_rounds, fast_spr_rounds,
			parsimony_scores, rate_heterogeneity, base_frequencies,
			substitution_rates, patterns, gaps, invariant
		 FROM runs WHERE path = ?`, path)
	return scanRun(row)
}

// List returns all stored runs ordered by best log-likelihood,
// best first.
func (s *Store) List(ctx context.Context) ([]*raxlog.RunMetrics, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, final_llh, best_llh, all_llhs, starting_llh,
			elapsed_seconds, runtimes, slow_spr_rounds, fast_spr_rounds,
			parsimony_scores, rate_heterogeneity, base_frequencies,
			substitution_rates, patterns, gaps, invariant
		 FROM runs ORDER BY best_llh DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*raxlog.RunMetrics
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*raxlog.RunMetrics, error) {
	var (
		m               raxlog.RunMetrics
		llhsJSON        string
		runtimesJSON    string
		parsimonyJSON   sql.NullString
		startingLLH     sql.NullFloat64
		patterns        sql.NullInt64
		gaps, invariant sql.NullFloat64
	)
	err := row.Scan(
		&m.Path, &m.FinalLogLikelihood, &m.BestLogLikelihood, &llhsJSON, &startingLLH,
		&m.ElapsedSeconds, &runtimesJSON, &m.SlowSprRounds, &m.FastSprRounds,
		&parsimonyJSON, &m.Model.RateHeterogeneity, &m.Model.BaseFrequencies,
		&m.Model.SubstitutionRates, &patterns, &gaps, &invariant,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(llhsJSON), &m.LogLikelihoods); err != nil {
		return nil, fmt.Errorf("decoding log-likelihoods for %s: %w", m.Path, err)
	}
	if err := json.Unmarshal([]byte(runtimesJSON), &m.Runtimes); err != nil {
		return nil, fmt.Errorf("decoding runtimes for %s: %w", m.Path, err)
	}
	if parsimonyJSON.Valid && parsimonyJSON.String != "" {
		if err := json.Unmarshal([]byte(parsimonyJSON.String), &m.ParsimonyScores); err != nil {
			return nil, fmt.Errorf("decoding parsimony scores for %s: %w", m.Path, err)
		}
	}
	if startingLLH.Valid {
		v := startingLLH.Float64
		m.StartingLogLikelihood = &v
	}
	if patterns.Valid {
		m.Alignment = &raxlog.AlignmentStats{
			Patterns:  int(patterns.Int64),
			Gaps:      gaps.Float64,
			Invariant: invariant.Float64,
		}
	}
	return &m, nil
}
