package raxlog

import (
	"strings"

	"github.com/raxlog/raxlog-go/internal/parser"
)

// EventType identifies a progress event observed while following a
// live RAxML-NG log.
type EventType string

const (
	// EventStartingLogLikelihood fires on the "Initial branch length
	// optimization" progress line; Value is the starting tree's LLH.
	EventStartingLogLikelihood EventType = "starting_llh"

	// EventSprRound fires when an SPR round starts; Round and Slow
	// describe the round, Value carries the LLH printed with it when
	// the line has the bracketed progress prefix.
	EventSprRound EventType = "spr_round"

	// EventFinalLogLikelihood fires on a "Final LogLikelihood:" line.
	EventFinalLogLikelihood EventType = "final_llh"

	// EventParsimonyScore fires on a "Parsimony score" line.
	EventParsimonyScore EventType = "parsimony_score"

	// EventElapsedTime fires on an "Elapsed time:" line; Value is the
	// total seconds, restart-aware.
	EventElapsedTime EventType = "elapsed_time"
)

// Event is one progress observation from a followed log.
type Event struct {
	Type    EventType `json:"type"`
	Value   float64   `json:"value"`
	Round   int       `json:"round,omitempty"`
	Slow    bool      `json:"slow,omitempty"`
	RawLine string    `json:"raw_line,omitempty"`
}

// classifyLine maps a log line to a progress event.
//
// Returns:
//   - (Event, true, nil): recognized progress line
//   - (Event{}, false, nil): not a progress line
//   - (Event{}, false, error): progress line with malformed content
func classifyLine(line string) (Event, bool, error) {
	if round, slow, matched := parser.SprRound(line); matched {
		ev := Event{Type: EventSprRound, Round: round, Slow: slow}
		// SPR lines usually carry the current LLH in their prefix.
		if llh, ok, err := parser.BracketLLH(line); err == nil && ok {
			ev.Value = llh
		}
		return ev, true, nil
	}

	if strings.Contains(line, parser.MarkerFinalLogLikelihood) {
		v, err := parser.ValueAfterMarker(line, parser.MarkerFinalLogLikelihood)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Type: EventFinalLogLikelihood, Value: v}, true, nil
	}

	if strings.Contains(line, parser.MarkerBranchLengthOpt) {
		v, matched, err := parser.BracketLLH(line)
		if err != nil {
			return Event{}, false, err
		}
		if !matched {
			return Event{}, false, nil
		}
		return Event{Type: EventStartingLogLikelihood, Value: v}, true, nil
	}

	if strings.Contains(line, parser.MarkerParsimonyScore) {
		score, err := parser.IntAfterColon(line)
		if err != nil {
			// Timestamped parsimony progress lines are not scores.
			return Event{}, false, nil
		}
		return Event{Type: EventParsimonyScore, Value: float64(score)}, true, nil
	}

	if strings.Contains(line, parser.MarkerElapsedTime) {
		tl, err := parser.ParseTimeLine(line)
		if err != nil {
			return Event{}, false, err
		}
		return Event{Type: EventElapsedTime, Value: tl.Seconds()}, true, nil
	}

	return Event{}, false, nil
}
