package raxlog

import (
	"errors"
)

// RunMetrics aggregates everything this package can extract from one
// tree-search log. It is the unit the CLI prints and the scan command
// stores.
//
// StartingLogLikelihood is nil when the run's initial phase was not
// logged (restarted runs). Alignment is nil when the log carries no
// alignment section at all, e.g. a search-only log; a partially
// present or malformed section is still an error.
type RunMetrics struct {
	Path string `json:"path" yaml:"path"`

	FinalLogLikelihood    float64   `json:"final_llh" yaml:"final_llh"`
	BestLogLikelihood     float64   `json:"best_llh" yaml:"best_llh"`
	LogLikelihoods        []float64 `json:"all_llhs" yaml:"all_llhs"`
	StartingLogLikelihood *float64  `json:"starting_llh,omitempty" yaml:"starting_llh,omitempty"`

	ElapsedSeconds float64   `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Runtimes       []float64 `json:"runtimes" yaml:"runtimes"`

	SlowSprRounds int `json:"slow_spr_rounds" yaml:"slow_spr_rounds"`
	FastSprRounds int `json:"fast_spr_rounds" yaml:"fast_spr_rounds"`

	ParsimonyScores []int `json:"parsimony_scores,omitempty" yaml:"parsimony_scores,omitempty"`

	Model     ModelParameters `json:"model" yaml:"model"`
	Alignment *AlignmentStats `json:"alignment,omitempty" yaml:"alignment,omitempty"`
}

// ExtractRunMetrics runs every extractor against one log file and
// collects the results. The final log-likelihood and the elapsed time
// are mandatory; the remaining fields degrade to their documented
// absent forms when the log lacks them.
func (e *Extractor) ExtractRunMetrics(path string) (*RunMetrics, error) {
	m := &RunMetrics{Path: path}

	var err error
	if m.FinalLogLikelihood, err = e.FinalLogLikelihood(path); err != nil {
		return nil, err
	}
	if m.LogLikelihoods, err = e.AllLogLikelihoods(path); err != nil {
		return nil, err
	}
	// At least one value exists: FinalLogLikelihood succeeded above.
	m.BestLogLikelihood = m.LogLikelihoods[0]
	for _, v := range m.LogLikelihoods[1:] {
		if v > m.BestLogLikelihood {
			m.BestLogLikelihood = v
		}
	}

	llh, found, err := e.StartingLogLikelihood(path)
	if err != nil {
		return nil, err
	}
	if found {
		m.StartingLogLikelihood = &llh
	}

	if m.ElapsedSeconds, err = e.ElapsedTime(path); err != nil {
		return nil, err
	}
	if m.Runtimes, err = e.AllRuntimes(path); err != nil {
		return nil, err
	}

	if m.SlowSprRounds, m.FastSprRounds, err = e.SprRoundCounts(path); err != nil {
		return nil, err
	}
	if m.ParsimonyScores, err = e.ParsimonyScores(path); err != nil {
		return nil, err
	}
	if m.Model, err = e.ModelParameterEstimates(path); err != nil {
		return nil, err
	}

	stats, found2, err := e.alignmentStats(path)
	if err != nil {
		return nil, err
	}
	switch len(found2) {
	case 0:
		// Search-only log without an alignment section.
	case 3:
		m.Alignment = &stats
	default:
		return nil, &ParseError{
			Path:  path,
			Cause: errors.New("alignment statistics incomplete, missing " + missingAlignmentMarkers(found2)),
		}
	}

	return m, nil
}
