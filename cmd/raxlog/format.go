package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

// ValidFormats lists all valid output formats for extracted metrics.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"yaml":   true,
	"pretty": true,
}

// OutputMetrics writes run metrics in the specified format.
func OutputMetrics(format string, m *raxlog.RunMetrics, out io.Writer) error {
	switch format {
	case "jsonl":
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case "pretty":
		return outputMetricsPretty(m, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func outputMetricsPretty(m *raxlog.RunMetrics, out io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", m.Path)
	fmt.Fprintf(&sb, "  final LLH:      %.6f\n", m.FinalLogLikelihood)
	fmt.Fprintf(&sb, "  best LLH:       %.6f (of %d searches)\n", m.BestLogLikelihood, len(m.LogLikelihoods))
	if m.StartingLogLikelihood != nil {
		fmt.Fprintf(&sb, "  starting LLH:   %.6f\n", *m.StartingLogLikelihood)
	} else {
		fmt.Fprintf(&sb, "  starting LLH:   n/a (restarted run)\n")
	}
	fmt.Fprintf(&sb, "  elapsed:        %.3fs\n", m.ElapsedSeconds)
	fmt.Fprintf(&sb, "  SPR rounds:     %d slow / %d fast\n", m.SlowSprRounds, m.FastSprRounds)
	if len(m.ParsimonyScores) > 0 {
		fmt.Fprintf(&sb, "  parsimony:      %s\n", joinInts(m.ParsimonyScores))
	}
	if m.Model.RateHeterogeneity != "" {
		fmt.Fprintf(&sb, "  rate het.:      %s\n", m.Model.RateHeterogeneity)
	}
	if m.Model.BaseFrequencies != "" {
		fmt.Fprintf(&sb, "  base freqs:     %s\n", m.Model.BaseFrequencies)
	}
	if m.Model.SubstitutionRates != "" {
		fmt.Fprintf(&sb, "  subst. rates:   %s\n", m.Model.SubstitutionRates)
	}
	if m.Alignment != nil {
		fmt.Fprintf(&sb, "  alignment:      %d patterns, %.2f%% gaps, %.2f%% invariant\n",
			m.Alignment.Patterns, m.Alignment.Gaps*100, m.Alignment.Invariant*100)
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

// ValidEventFormats lists all valid output formats for follow events.
var ValidEventFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputEvent writes a progress event in the specified format.
func OutputEvent(format string, ev raxlog.Event, out io.Writer) error {
	switch format {
	case "jsonl":
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "pretty":
		return outputEventPretty(ev, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func outputEventPretty(ev raxlog.Event, out io.Writer) error {
	var err error
	switch ev.Type {
	case raxlog.EventStartingLogLikelihood:
		_, err = fmt.Fprintf(out, "> starting LLH %.6f\n", ev.Value)
	case raxlog.EventSprRound:
		mode := "FAST"
		if ev.Slow {
			mode = "SLOW"
		}
		if ev.Value != 0 {
			_, err = fmt.Fprintf(out, "* %s spr round %d (LLH %.6f)\n", mode, ev.Round, ev.Value)
		} else {
			_, err = fmt.Fprintf(out, "* %s spr round %d\n", mode, ev.Round)
		}
	case raxlog.EventParsimonyScore:
		_, err = fmt.Fprintf(out, "* parsimony score %d\n", int(ev.Value))
	case raxlog.EventFinalLogLikelihood:
		_, err = fmt.Fprintf(out, "= final LLH %.6f\n", ev.Value)
	case raxlog.EventElapsedTime:
		_, err = fmt.Fprintf(out, "= elapsed %.3fs\n", ev.Value)
	default:
		_, err = fmt.Fprintf(out, "? %s %v\n", ev.Type, ev.Value)
	}
	return err
}
