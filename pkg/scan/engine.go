// Package scan is the concurrent filesystem scanning engine behind the
// dragabyte disk-usage analyzer. It walks a directory tree, applies
// compiled inclusion/exclusion filters, aggregates per-directory totals,
// tracks the largest files encountered, and emits periodic snapshot events
// plus a final hierarchical summary.
//
// Scans run on background goroutines: Start and Cancel both return
// immediately. Every successfully started scan publishes exactly one
// terminal event (scan-complete, scan-cancelled, or scan-error) to its
// sink, never zero, never more than one.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/pureportal/dragabyte/pkg/events"
	"github.com/pureportal/dragabyte/pkg/logging"
	"github.com/pureportal/dragabyte/pkg/scan/filter"
	"github.com/pureportal/dragabyte/pkg/scan/priority"
)

// ErrPathNotFound indicates the requested scan root does not exist.
var ErrPathNotFound = errors.New("path does not exist")

// ErrInvalidFilter indicates the filter specification was rejected.
// The wrapped error carries the reason (filter.ErrInvalidSizeBounds or
// filter.ErrInvalidPattern).
var ErrInvalidFilter = errors.New("invalid filter")

// Options configures one scan.
type Options struct {
	Priority priority.Mode          `json:"priorityMode"`
	Throttle priority.ThrottleLevel `json:"throttleLevel"`
	Filters  filter.Spec            `json:"filters"`
}

// Engine manages scan sessions. One Engine serves any number of concurrent
// sessions, with at most one active scan per session key.
type Engine struct {
	reg *registry
	log *log.Logger
}

// NewEngine creates an Engine with an empty session registry.
func NewEngine() *Engine {
	return &Engine{
		reg: newRegistry(),
		log: logging.Get("scan"),
	}
}

// Start validates the root and options, then launches the scan on a
// background goroutine and returns immediately. Events are delivered to
// sink. Starting a scan for a key with an active scan cancels the prior
// scan first.
//
// Setup failures are returned synchronously: ErrPathNotFound when root
// does not exist, ErrInvalidFilter when filter compilation fails. No
// events are published and no session is registered in either case.
func (e *Engine) Start(key, root string, opts Options, sink events.Sink) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}

	compiled, err := filter.Compile(opts.Filters)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	profile := priority.Resolve(opts.Priority, opts.Throttle)
	token := e.reg.begin(key)

	s := &session{
		key:     key,
		root:    abs,
		profile: profile,
		filters: compiled,
		sink:    sink,
		token:   token,
		reg:     e.reg,
		log:     e.log,
	}

	e.log.Info("scan started",
		"session", key,
		"root", abs,
		"priority", opts.Priority,
		"throttle", opts.Throttle,
		"workers", profile.Workers)
	go s.run()
	return nil
}

// Cancel requests cooperative cancellation of the active scan for key.
// Always succeeds; a no-op if no scan is active for the key.
func (e *Engine) Cancel(key string) {
	e.reg.cancel(key)
}

// ActiveSessions returns the number of sessions with a registered scan.
func (e *Engine) ActiveSessions() int {
	return e.reg.active()
}
