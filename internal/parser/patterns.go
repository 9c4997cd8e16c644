package parser

import "regexp"

// Marker substrings that identify the log lines we extract values from.
// RAxML-NG prints each fact on its own line, prefixed by one of these.
const (
	MarkerFinalLogLikelihood = "Final LogLikelihood:"
	MarkerBranchLengthOpt    = "Initial branch length optimization"
	MarkerElapsedTime        = "Elapsed time:"
	MarkerParsimonyScore     = "Parsimony score"
	MarkerRateHeterogeneity  = "Rate heterogeneity"
	MarkerBaseFrequencies    = "Base frequencies"
	MarkerSubstitutionRates  = "Substitution rates"
	MarkerAlignmentSites     = "Alignment sites"
	MarkerGaps               = "Gaps"
	MarkerInvariantSites     = "Invariant sites"
)

// Compiled regex patterns for line detection.
var (
	// Matches: "[00:00:00 -8735.928562] Initial branch length optimization"
	// Captures: (1) log-likelihood after the timestamp, inside the brackets
	bracketLLHPattern = regexp.MustCompile(
		`^\[\d{1,2}:\d{2}:\d{2}\s+(-?\d+(?:\.\d+)?)\]`,
	)

	// Matches: "SLOW spr round 3 (radius: 5)"
	// Keyword is case-sensitive, whitespace between tokens is flexible.
	// Captures: (1) round number
	slowSprPattern = regexp.MustCompile(`SLOW\s+spr\s+round\s+(\d+)`)

	// Matches: "FAST spr round 1 (radius: 5)"
	// Captures: (1) round number
	fastSprPattern = regexp.MustCompile(`FAST\s+spr\s+round\s+(\d+)`)
)
