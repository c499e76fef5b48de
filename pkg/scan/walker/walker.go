// Package walker enumerates filesystem entries under a root using fastwalk.
// Directory listing fans out across a bounded worker pool, but entries are
// delivered through a single channel so the consumer can mutate scan state
// without locking.
package walker

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
)

// Entry is one filesystem object yielded by traversal. For files, Size is
// the byte size at stat time, or 0 if the metadata could not be read.
type Entry struct {
	Path string
	Name string
	Dir  bool
	Size int64
}

// Options configures a Walker.
type Options struct {
	// Workers is the parallelism degree for directory enumeration.
	// Values below 1 are treated as 1 (fully sequential).
	Workers int

	// SkipDir, when non-nil, is consulted for every directory below the
	// root. Returning true prunes the directory and everything beneath it.
	// It must be safe for concurrent calls.
	SkipDir func(path string) bool
}

// Walker streams entries rooted at a fixed path. Each Walker is good for
// one traversal.
type Walker struct {
	root string
	opts Options
	err  error
}

// New creates a Walker for root. The root is expected to have been
// validated by the caller.
func New(root string, opts Options) *Walker {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Walker{root: filepath.Clean(root), opts: opts}
}

// Walk starts the traversal and returns the entry channel. The channel is
// closed when traversal finishes, fails, or the context is cancelled; after
// that, Err reports any fatal traversal error. Individual entry read errors
// are skipped, never surfaced.
func (w *Walker) Walk(ctx context.Context) <-chan Entry {
	entries := make(chan Entry, 256)

	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: w.opts.Workers,
		Sort:       fastwalk.SortLexical,
	}

	go func() {
		defer close(entries)
		err := fastwalk.Walk(&conf, w.root, w.callback(ctx, entries))
		if err != nil && !errors.Is(err, context.Canceled) {
			w.err = err
		}
	}()

	return entries
}

// Err reports the fatal traversal error, if any. Valid only after the
// channel returned by Walk has been closed.
func (w *Walker) Err() error {
	return w.err
}

func (w *Walker) callback(ctx context.Context, entries chan<- Entry) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		// Unreadable entries are skipped, not escalated.
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != w.root && w.opts.SkipDir != nil && w.opts.SkipDir(path) {
				return fastwalk.SkipDir
			}
			return w.send(ctx, entries, Entry{Path: path, Name: d.Name(), Dir: true})
		}

		if !d.Type().IsRegular() {
			// Symlinks and special files carry no size of their own.
			return nil
		}

		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}
		return w.send(ctx, entries, Entry{Path: path, Name: d.Name(), Size: size})
	}
}

func (w *Walker) send(ctx context.Context, entries chan<- Entry, e Entry) error {
	select {
	case entries <- e:
		return nil
	case <-ctx.Done():
		return context.Canceled
	}
}
