package raxlog

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/raxlog/raxlog-go/internal/safefile"
)

// maxLineBytes bounds a single log line during scanning. RAxML-NG lines
// are short; the generous limit only guards against reading a binary
// file by mistake.
const maxLineBytes = 1024 * 1024

// readLines reads a log file into an ordered slice of lines.
// Surrounding whitespace is stripped: RAxML-NG indents the model
// parameter section, and markers are matched by line prefix.
func readLines(path string) ([]string, error) {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("reading log file %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log file %s: %w", path, err)
	}
	return lines, nil
}
