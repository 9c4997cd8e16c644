package raxlog

import "fmt"

// NotFoundError reports that a log file contains no line with a
// required marker (e.g. no "Final LogLikelihood:" line at all).
type NotFoundError struct {
	Path   string // log file that was scanned
	Marker string // marker substring that was expected
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no line containing %q", e.Path, e.Marker)
}

// ParseError reports that a marker line was found but its content could
// not be converted to the expected shape (malformed log or an output
// format this package does not know about).
type ParseError struct {
	Path  string // log file being parsed
	Line  string // offending line (may be empty for whole-file checks)
	Cause error  // underlying conversion error
}

func (e *ParseError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("%s: parsing line %q: %v", e.Path, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause of the error.
// This enables errors.Is() and errors.As() to work with ParseError.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
