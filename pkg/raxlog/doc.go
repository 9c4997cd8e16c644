// Package raxlog extracts structured results from RAxML-NG log files.
//
// RAxML-NG writes one fact per line, each prefixed by a stable marker
// string. This package turns those lines into typed values for
// downstream analysis of tree-search runs: log-likelihoods, runtimes,
// SPR round counts, parsimony scores, model parameter estimates, and
// alignment statistics. It is a read-only adapter over the log text;
// it never parses the full log grammar and never modifies the file.
//
// # Basic Usage
//
// To read individual values:
//
//	ex := raxlog.New()
//	llh, err := ex.FinalLogLikelihood("search.raxml.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or collect everything a log carries at once:
//
//	metrics, err := ex.ExtractRunMetrics("search.raxml.log")
//
// Extraction is tolerant of the historical log variants RAxML-NG has
// produced: runs that were cancelled and restarted report their total
// elapsed time rather than the final sitting, and a restarted run's
// missing starting log-likelihood is a sentinel with a diagnostic, not
// an error:
//
//	llh, found, err := ex.StartingLogLikelihood("restarted.raxml.log")
//	// found == false, llh == math.Inf(-1), err == nil
//
// # Tree Distances
//
// RelativeRFDistance delegates to the raxml-ng binary itself:
//
//	dist, err := raxlog.RelativeRFDistance(ctx, startingTree, finalTree,
//	    raxlog.WithExecutable("/opt/raxml-ng/bin/raxml-ng"))
//
// # Following a Live Run
//
// Follow tails a growing log and reports progress events:
//
//	events, errs, err := raxlog.Follow(ctx, "search.raxml.log")
//	for ev := range events {
//	    fmt.Printf("%s %v\n", ev.Type, ev.Value)
//	}
//
// All extraction methods are pure functions of the file's lines, so a
// single Extractor is safe for concurrent use on distinct files.
package raxlog
