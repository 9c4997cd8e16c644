// Package logfinder locates RAxML-NG log files in run directories.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// logPattern matches RAxML-NG's default log naming: <prefix>.raxml.log.
const logPattern = "*.raxml.log"

// ErrNoLogFiles is returned when a directory contains no RAxML-NG logs.
var ErrNoLogFiles = errors.New("no log files found")

// logCandidate holds a log file path and its cached modification time,
// so files deleted between stat and sort cannot skew the ordering.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLogFiles returns every RAxML-NG log in dir, sorted by path.
// Returns ErrNoLogFiles when the directory has none.
func FindLogFiles(dir string) ([]string, error) {
	candidates, err := statCandidates(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	sort.Strings(paths)
	return paths, nil
}

// FindLatestLogFile returns the most recently modified RAxML-NG log in
// dir. Returns ErrNoLogFiles when the directory has none.
func FindLatestLogFile(dir string) (string, error) {
	candidates, err := statCandidates(dir)
	if err != nil {
		return "", err
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime > candidates[j].modTime
	})
	return candidates[0].path, nil
}

func statCandidates(dir string) ([]logCandidate, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logPattern))
	if err != nil {
		return nil, fmt.Errorf("globbing log files: %w", err)
	}

	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			// Deleted or unreadable since globbing; skip.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}
	if len(candidates) == 0 {
		return nil, ErrNoLogFiles
	}
	return candidates, nil
}
