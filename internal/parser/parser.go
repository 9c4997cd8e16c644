// Package parser provides RAxML-NG log line parsing functionality.
//
// Every function in this package operates on a single log line and is a
// pure function of its input. File scanning and error context (paths,
// typed errors) live in pkg/raxlog; this package only decides whether a
// line carries a value and what that value is.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeLineKind discriminates the two shapes of "Elapsed time:" lines.
type TimeLineKind int

const (
	// TimeSimple is a run that finished in one sitting:
	// "Elapsed time: 63514.086 seconds"
	TimeSimple TimeLineKind = iota

	// TimeRestarted is a run that was cancelled and rescheduled:
	// "Elapsed time: 5562.869 seconds (this run) / 91413.668 seconds (total with restarts)"
	TimeRestarted
)

// TimeLine is the parsed form of an "Elapsed time:" line.
// For TimeSimple only Run is set; for TimeRestarted both Run and Total are.
type TimeLine struct {
	Kind  TimeLineKind
	Run   float64
	Total float64
}

// Seconds returns the wall-clock seconds the line accounts for.
// For restarted runs that is the total across all restarts, not the
// final sitting alone.
func (t TimeLine) Seconds() float64 {
	if t.Kind == TimeRestarted {
		return t.Total
	}
	return t.Run
}

// ParseTimeLine parses an "Elapsed time:" line into its tagged form.
// The restarted shape is detected by the "restarts" substring.
func ParseTimeLine(line string) (TimeLine, error) {
	if !strings.Contains(line, "restarts") {
		run, err := ValueAfterMarker(line, MarkerElapsedTime)
		if err != nil {
			return TimeLine{}, err
		}
		return TimeLine{Kind: TimeSimple, Run: run}, nil
	}

	left, right, ok := strings.Cut(line, "/")
	if !ok {
		return TimeLine{}, fmt.Errorf("restarted elapsed time line has no %q separator: %q", "/", line)
	}
	run, err := ValueAfterMarker(left, MarkerElapsedTime)
	if err != nil {
		return TimeLine{}, err
	}
	total, err := firstFloat(right)
	if err != nil {
		return TimeLine{}, fmt.Errorf("restarted elapsed time line: %w", err)
	}
	return TimeLine{Kind: TimeRestarted, Run: run, Total: total}, nil
}

// ValueAfterMarker extracts the first numeric token following marker on
// the line. Returns an error if the marker is absent or the token does
// not parse as a float.
func ValueAfterMarker(line, marker string) (float64, error) {
	_, rest, ok := strings.Cut(line, marker)
	if !ok {
		return 0, fmt.Errorf("marker %q not found in line %q", marker, line)
	}
	return firstFloat(rest)
}

// BracketLLH extracts the log-likelihood from a progress line of the
// shape "[<timestamp> <llh>] <description>". The second return value
// reports whether the line has that shape at all.
func BracketLLH(line string) (float64, bool, error) {
	match := bracketLLHPattern.FindStringSubmatch(line)
	if match == nil {
		return 0, false, nil
	}
	llh, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, true, fmt.Errorf("parsing bracketed log-likelihood %q: %w", match[1], err)
	}
	return llh, true, nil
}

// SprRound extracts the round number from a "SLOW spr round <n>" or
// "FAST spr round <n>" line. slow reports which category matched;
// matched is false when the line is neither.
func SprRound(line string) (round int, slow bool, matched bool) {
	if m := slowSprPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false, false
		}
		return n, true, true
	}
	if m := fastSprPattern.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false, false
		}
		return n, false, true
	}
	return 0, false, false
}

// IntAfterColon splits the line on its first colon and parses the
// remainder as an integer. Used for "Parsimony score: <n>" lines.
func IntAfterColon(line string) (int, error) {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return 0, fmt.Errorf("line %q has no colon", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, fmt.Errorf("parsing integer from %q: %w", strings.TrimSpace(rest), err)
	}
	return n, nil
}

// TextAfterColon splits the line on its first colon and returns the
// trimmed remainder. Used for model parameter lines whose content
// varies by model and is kept opaque.
func TextAfterColon(line string) (string, error) {
	_, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", fmt.Errorf("line %q has no colon", line)
	}
	return strings.TrimSpace(rest), nil
}

// SitesPatterns parses an "Alignment sites / patterns: 1940 / 933" line
// and returns the pattern count (the second number).
func SitesPatterns(line string) (int, error) {
	rest, err := TextAfterColon(line)
	if err != nil {
		return 0, err
	}
	_, patterns, ok := strings.Cut(rest, "/")
	if !ok {
		return 0, fmt.Errorf("alignment sites line %q has no %q separator", line, "/")
	}
	n, err := strconv.Atoi(strings.TrimSpace(patterns))
	if err != nil {
		return 0, fmt.Errorf("parsing pattern count from %q: %w", line, err)
	}
	return n, nil
}

// Proportion parses a "Gaps: 12.50 %" or "Invariant sites: 40.00 %"
// line and returns the percentage as a proportion in [0, 1].
func Proportion(line string) (float64, error) {
	rest, err := TextAfterColon(line)
	if err != nil {
		return 0, err
	}
	pct, err := firstFloat(rest)
	if err != nil {
		return 0, fmt.Errorf("parsing percentage from %q: %w", line, err)
	}
	return pct / 100.0, nil
}

// firstFloat parses the first whitespace-separated token of s as a
// float, tolerating a trailing "%" glued to the number.
func firstFloat(s string) (float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("no numeric token in %q", s)
	}
	token := strings.TrimSuffix(fields[0], "%")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as number: %w", token, err)
	}
	return v, nil
}
