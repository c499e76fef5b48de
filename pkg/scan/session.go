package scan

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pureportal/dragabyte/pkg/events"
	"github.com/pureportal/dragabyte/pkg/scan/filter"
	"github.com/pureportal/dragabyte/pkg/scan/priority"
	"github.com/pureportal/dragabyte/pkg/scan/walker"
)

// session is one running scan: a walker feeding a single consumer loop
// that aggregates state, honors throttling, checks the cancellation token
// per entry, and emits progress snapshots.
type session struct {
	key     string
	root    string
	profile priority.Profile
	filters *filter.Compiled
	sink    events.Sink
	token   *Token
	reg     *registry
	log     *log.Logger
}

func (s *session) run() {
	start := time.Now()
	defer s.reg.retire(s.key, s.token)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agg := newAggregator(s.root, s.filters)
	w := walker.New(s.root, walker.Options{
		Workers: s.profile.Workers,
		SkipDir: s.filters.SkipDir,
	})
	entries := w.Walk(ctx)

	lastEmit := time.Now()
	var processed int64

	for entry := range entries {
		if s.token.Cancelled() {
			cancel()
			for range entries {
				// Drain so walker goroutines can exit.
			}
			s.log.Info("scan cancelled", "session", s.key, "entries", processed)
			s.publish(events.ScanCancelled, "Scan cancelled")
			return
		}

		agg.observe(entry)
		processed++

		if t := s.profile.Throttle; t != nil && processed%t.EveryEntries == 0 {
			time.Sleep(t.Pause)
		}

		if processed%s.profile.EmitEvery == 0 || time.Since(lastEmit) >= s.profile.EmitInterval {
			s.publish(events.ScanProgress, agg.summary(time.Since(start)))
			lastEmit = time.Now()
		}
	}

	if err := w.Err(); err != nil {
		s.log.Error("scan failed", "session", s.key, "error", err)
		s.publish(events.ScanError, err.Error())
		return
	}

	summary := agg.summary(time.Since(start))
	s.log.Info("scan complete",
		"session", s.key,
		"files", summary.FileCount,
		"dirs", summary.DirCount,
		"bytes", summary.TotalBytes,
		"elapsed", time.Since(start))
	s.publish(events.ScanComplete, summary)
}

// publish hands an event to the sink. Delivery failure never aborts the scan.
func (s *session) publish(name string, payload any) {
	if err := s.sink.Emit(name, payload); err != nil {
		s.log.Debug("event not delivered", "event", name, "error", err)
	}
}
