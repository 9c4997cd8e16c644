// Package safefile provides hardened file open operations.
package safefile

import (
	"errors"
	"os"
)

// ErrNotRegularFile is returned when attempting to open a path that is
// not a regular file: symlinks, FIFOs, devices, sockets, directories.
var ErrNotRegularFile = errors.New("not a regular file")

// OpenRegular opens a file and verifies it is a regular file, both
// before opening (Lstat, without following symlinks) and after, on the
// open descriptor. This narrows the TOCTOU window where the path could
// be swapped for a symlink or special file between check and use.
//
// Returns:
//   - (*os.File, os.FileInfo, nil) on success
//   - (nil, nil, error) on failure (file closed automatically)
//
// The caller must close the returned file when done.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	// Re-check on the descriptor: catches a swap between Lstat and Open.
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}

	return f, info, nil
}
