// Package tailer wraps nxadm/tail behind string-line channels.
package tailer

import (
	"context"
	"io"
	"strings"

	"github.com/nxadm/tail"
)

// Config controls tailing behavior.
type Config struct {
	// FromStart reads the file from the beginning instead of seeking
	// to the end before following.
	FromStart bool

	// Poll uses filesystem polling instead of inotify. Needed on
	// filesystems without event support (network mounts).
	Poll bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// Tailer follows a single file and exposes its lines as strings.
type Tailer struct {
	t     *tail.Tail
	lines chan string
	errs  chan error
}

// New starts tailing path. The returned Tailer's channels close when
// ctx is cancelled, Stop is called, or the underlying tail fails.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	tailCfg := tail.Config{
		Follow: true,
		ReOpen: true,
		Poll:   cfg.Poll,
		Logger: tail.DiscardingLogger,
	}
	if !cfg.FromStart {
		tailCfg.Location = &tail.SeekInfo{Whence: io.SeekEnd}
	}

	tt, err := tail.TailFile(path, tailCfg)
	if err != nil {
		return nil, err
	}

	t := &Tailer{
		t:     tt,
		lines: make(chan string),
		errs:  make(chan error, 1),
	}
	go t.run(ctx)
	return t, nil
}

func (t *Tailer) run(ctx context.Context) {
	defer close(t.lines)
	defer close(t.errs)

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.t.Lines:
			if !ok {
				if err := t.t.Err(); err != nil {
					t.sendErr(ctx, err)
				}
				return
			}
			if line.Err != nil {
				t.sendErr(ctx, line.Err)
				continue
			}
			select {
			case t.lines <- strings.TrimRight(line.Text, "\r"):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (t *Tailer) sendErr(ctx context.Context, err error) {
	select {
	case t.errs <- err:
	case <-ctx.Done():
	default:
	}
}

// Lines returns the channel of tailed lines, CR-stripped.
func (t *Tailer) Lines() <-chan string { return t.lines }

// Errors returns the channel of non-fatal tail errors.
func (t *Tailer) Errors() <-chan error { return t.errs }

// Stop stops tailing and releases the inotify watch.
func (t *Tailer) Stop() error {
	err := t.t.Stop()
	t.t.Cleanup()
	return err
}
