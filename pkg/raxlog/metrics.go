package raxlog

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/raxlog/raxlog-go/internal/parser"
)

// Extractor reads typed values out of RAxML-NG log files. Every method
// performs one sequential pass over the file's lines and holds no state
// between calls, so a single Extractor is safe for concurrent use.
type Extractor struct {
	log *slog.Logger
}

// New creates an Extractor.
//
// Example:
//
//	ex := raxlog.New(raxlog.WithLogger(logger))
//	llh, err := ex.FinalLogLikelihood("search.raxml.log")
func New(opts ...Option) *Extractor {
	cfg := applyOptions(opts)
	return &Extractor{log: cfg.logger}
}

// FinalLogLikelihood returns the value of the first
// "Final LogLikelihood:" line. Returns a NotFoundError if the log has
// no such line.
func (e *Extractor) FinalLogLikelihood(path string) (float64, error) {
	lines, err := readLines(path)
	if err != nil {
		return 0, err
	}
	for _, line := range lines {
		if !strings.Contains(line, parser.MarkerFinalLogLikelihood) {
			continue
		}
		v, err := parser.ValueAfterMarker(line, parser.MarkerFinalLogLikelihood)
		if err != nil {
			return 0, &ParseError{Path: path, Line: line, Cause: err}
		}
		return v, nil
	}
	return 0, &NotFoundError{Path: path, Marker: parser.MarkerFinalLogLikelihood}
}

// AllLogLikelihoods returns, in file order, the value of every
// "Final LogLikelihood:" line. A run that repeats its search reports
// several final values. The slice is empty when the log has none;
// that is not an error.
func (e *Extractor) AllLogLikelihoods(path string) ([]float64, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var llhs []float64
	for _, line := range lines {
		if !strings.Contains(line, parser.MarkerFinalLogLikelihood) {
			continue
		}
		v, err := parser.ValueAfterMarker(line, parser.MarkerFinalLogLikelihood)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Cause: err}
		}
		llhs = append(llhs, v)
	}
	return llhs, nil
}

// BestLogLikelihood returns the maximum of AllLogLikelihoods.
// Returns a NotFoundError when the log reports no final values.
func (e *Extractor) BestLogLikelihood(path string) (float64, error) {
	llhs, err := e.AllLogLikelihoods(path)
	if err != nil {
		return 0, err
	}
	if len(llhs) == 0 {
		return 0, &NotFoundError{Path: path, Marker: parser.MarkerFinalLogLikelihood}
	}
	best := llhs[0]
	for _, v := range llhs[1:] {
		if v > best {
			best = v
		}
	}
	return best, nil
}

// StartingLogLikelihood returns the log-likelihood of the starting
// tree, taken from the "Initial branch length optimization" progress
// line.
//
// Restarted runs drop the initial phase from the log, so a missing
// marker is expected historical data rather than an error: found is
// false, the returned value is negative infinity, and a warning is
// emitted on the configured logger.
func (e *Extractor) StartingLogLikelihood(path string) (llh float64, found bool, err error) {
	lines, err := readLines(path)
	if err != nil {
		return 0, false, err
	}
	for _, line := range lines {
		if !strings.Contains(line, parser.MarkerBranchLengthOpt) {
			continue
		}
		v, matched, err := parser.BracketLLH(line)
		if err != nil || !matched {
			if err == nil {
				err = fmt.Errorf("line lacks the [<timestamp> <llh>] prefix")
			}
			return 0, false, &ParseError{Path: path, Line: line, Cause: err}
		}
		return v, true, nil
	}
	e.log.Warn("log does not contain the starting log-likelihood", "path", path)
	return math.Inf(-1), false, nil
}

// ElapsedTime returns the seconds elapsed for the run, from the first
// "Elapsed time:" line. For runs that were cancelled and restarted the
// total across all restarts is returned, not the final sitting alone.
// Returns a NotFoundError if the log has no elapsed-time line.
func (e *Extractor) ElapsedTime(path string) (float64, error) {
	lines, err := readLines(path)
	if err != nil {
		return 0, err
	}
	for _, line := range lines {
		if !strings.Contains(line, parser.MarkerElapsedTime) {
			continue
		}
		tl, err := parser.ParseTimeLine(line)
		if err != nil {
			return 0, &ParseError{Path: path, Line: line, Cause: err}
		}
		return tl.Seconds(), nil
	}
	return 0, &NotFoundError{Path: path, Marker: parser.MarkerElapsedTime}
}

// AllRuntimes returns the seconds of every "Elapsed time:" line in
// file order, with the same restart handling as ElapsedTime.
// Returns a NotFoundError when the log has none.
func (e *Extractor) AllRuntimes(path string) ([]float64, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var times []float64
	for _, line := range lines {
		if !strings.Contains(line, parser.MarkerElapsedTime) {
			continue
		}
		tl, err := parser.ParseTimeLine(line)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Cause: err}
		}
		times = append(times, tl.Seconds())
	}
	if len(times) == 0 {
		return nil, &NotFoundError{Path: path, Marker: parser.MarkerElapsedTime}
	}
	return times, nil
}

// SprRoundCounts returns the highest round number reported for SLOW
// and FAST SPR rounds. A log with neither yields (0, 0): zero rounds
// of that kind were performed, which is not an error.
func (e *Extractor) SprRoundCounts(path string) (slow, fast int, err error) {
	lines, err := readLines(path)
	if err != nil {
		return 0, 0, err
	}
	for _, line := range lines {
		round, isSlow, matched := parser.SprRound(line)
		if !matched {
			continue
		}
		if isSlow {
			if round > slow {
				slow = round
			}
		} else {
			if round > fast {
				fast = round
			}
		}
	}
	return slow, fast, nil
}

// ParsimonyScores returns the score of every "Parsimony score" line in
// file order. The slice is empty when the log has none.
func (e *Extractor) ParsimonyScores(path string) ([]int, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var scores []int
	for _, line := range lines {
		if !strings.Contains(line, parser.MarkerParsimonyScore) {
			continue
		}
		score, err := parser.IntAfterColon(line)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Cause: err}
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// ModelParameters holds the estimated model parameters as the opaque
// strings RAxML-NG prints. The exact content varies by model, so no
// further parsing is attempted. An empty field means the log does not
// contain that section.
type ModelParameters struct {
	RateHeterogeneity string `json:"rate_heterogeneity,omitempty" yaml:"rate_heterogeneity,omitempty"`
	BaseFrequencies   string `json:"base_frequencies,omitempty" yaml:"base_frequencies,omitempty"`
	SubstitutionRates string `json:"substitution_rates,omitempty" yaml:"substitution_rates,omitempty"`
}

// ModelParameterEstimates returns the model parameter strings from the
// log. When a section is printed more than once (multiple partitions),
// the last occurrence wins; values are not keyed by partition.
func (e *Extractor) ModelParameterEstimates(path string) (ModelParameters, error) {
	lines, err := readLines(path)
	if err != nil {
		return ModelParameters{}, err
	}
	var params ModelParameters
	for _, line := range lines {
		var dst *string
		switch {
		case strings.HasPrefix(line, parser.MarkerRateHeterogeneity):
			dst = &params.RateHeterogeneity
		case strings.HasPrefix(line, parser.MarkerBaseFrequencies):
			dst = &params.BaseFrequencies
		case strings.HasPrefix(line, parser.MarkerSubstitutionRates):
			dst = &params.SubstitutionRates
		default:
			continue
		}
		text, err := parser.TextAfterColon(line)
		if err != nil {
			return ModelParameters{}, &ParseError{Path: path, Line: line, Cause: err}
		}
		*dst = text
	}
	return params, nil
}

// AlignmentStats holds summary statistics RAxML-NG prints about the
// input alignment.
type AlignmentStats struct {
	Patterns  int     `json:"patterns" yaml:"patterns"`
	Gaps      float64 `json:"gaps" yaml:"gaps"`
	Invariant float64 `json:"invariant" yaml:"invariant"`
}

// AlignmentStats returns the pattern count, gap proportion, and
// invariant-site proportion from the log's alignment section. All
// three are mandatory: if any marker is missing after scanning the
// whole file, a ParseError is returned rather than a partial result.
func (e *Extractor) AlignmentStats(path string) (AlignmentStats, error) {
	stats, found, err := e.alignmentStats(path)
	if err != nil {
		return AlignmentStats{}, err
	}
	if len(found) < 3 {
		return AlignmentStats{}, &ParseError{
			Path:  path,
			Cause: fmt.Errorf("alignment statistics incomplete, missing %s", missingAlignmentMarkers(found)),
		}
	}
	return stats, nil
}

// alignmentStats scans for the three alignment markers. found records
// which of them were seen; an error is returned only for present but
// malformed lines.
func (e *Extractor) alignmentStats(path string) (AlignmentStats, map[string]bool, error) {
	lines, err := readLines(path)
	if err != nil {
		return AlignmentStats{}, nil, err
	}
	var stats AlignmentStats
	found := make(map[string]bool)
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, parser.MarkerAlignmentSites):
			stats.Patterns, err = parser.SitesPatterns(line)
			if err != nil {
				return AlignmentStats{}, nil, &ParseError{Path: path, Line: line, Cause: err}
			}
			found[parser.MarkerAlignmentSites] = true
		case strings.HasPrefix(line, parser.MarkerInvariantSites):
			stats.Invariant, err = parser.Proportion(line)
			if err != nil {
				return AlignmentStats{}, nil, &ParseError{Path: path, Line: line, Cause: err}
			}
			found[parser.MarkerInvariantSites] = true
		case strings.HasPrefix(line, parser.MarkerGaps):
			stats.Gaps, err = parser.Proportion(line)
			if err != nil {
				return AlignmentStats{}, nil, &ParseError{Path: path, Line: line, Cause: err}
			}
			found[parser.MarkerGaps] = true
		}
	}
	return stats, found, nil
}

func missingAlignmentMarkers(found map[string]bool) string {
	var missing []string
	for _, m := range []string{parser.MarkerAlignmentSites, parser.MarkerGaps, parser.MarkerInvariantSites} {
		if !found[m] {
			missing = append(missing, fmt.Sprintf("%q", m))
		}
	}
	return strings.Join(missing, ", ")
}
