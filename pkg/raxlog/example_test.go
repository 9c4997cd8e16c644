package raxlog_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/raxlog/raxlog-go/pkg/raxlog"
)

// Extract a single value from a finished run's log.
func ExampleExtractor_FinalLogLikelihood() {
	ex := raxlog.New()

	llh, err := ex.FinalLogLikelihood("search.raxml.log")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("final LLH: %.4f\n", llh)
}

// The starting log-likelihood is absent from restarted runs; the found
// flag distinguishes the sentinel from a real value.
func ExampleExtractor_StartingLogLikelihood() {
	ex := raxlog.New()

	llh, found, err := ex.StartingLogLikelihood("search.raxml.log")
	if err != nil {
		log.Fatal(err)
	}
	if !found {
		fmt.Println("run was restarted, starting LLH unavailable")
		return
	}
	fmt.Printf("starting LLH: %.4f\n", llh)
}

// Collect everything a log carries in one call.
func ExampleExtractor_ExtractRunMetrics() {
	ex := raxlog.New()

	metrics, err := ex.ExtractRunMetrics("search.raxml.log")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("best LLH %.2f after %d slow and %d fast SPR rounds\n",
		metrics.BestLogLikelihood, metrics.SlowSprRounds, metrics.FastSprRounds)
}

// Compare the starting and final topologies of a run.
func ExampleRelativeRFDistance() {
	starting, err := os.ReadFile("start.raxml.startTree")
	if err != nil {
		log.Fatal(err)
	}
	final, err := os.ReadFile("search.raxml.bestTree")
	if err != nil {
		log.Fatal(err)
	}

	dist, err := raxlog.RelativeRFDistance(context.Background(),
		string(starting), string(final),
		raxlog.WithExecutable("raxml-ng"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("relative RF distance: %.4f\n", dist)
}
