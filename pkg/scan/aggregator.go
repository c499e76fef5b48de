package scan

import (
	"path/filepath"
	"time"

	"github.com/pureportal/dragabyte/pkg/scan/filter"
	"github.com/pureportal/dragabyte/pkg/scan/snapshot"
	"github.com/pureportal/dragabyte/pkg/scan/walker"
)

// aggregator accumulates per-directory stats, the parent-to-children
// adjacency, per-directory file lists, and the largest-files set. It is
// owned by the single consumer goroutine of one scan; nothing else touches
// its state, so no locking is needed.
type aggregator struct {
	root     string
	filters  *filter.Compiled
	stats    map[string]snapshot.DirStats
	children map[string][]string
	files    map[string][]snapshot.FileRecord
	largest  *largestSet
}

func newAggregator(root string, filters *filter.Compiled) *aggregator {
	return &aggregator{
		root:     root,
		filters:  filters,
		stats:    make(map[string]snapshot.DirStats),
		children: make(map[string][]string),
		files:    make(map[string][]snapshot.FileRecord),
		largest:  newLargestSet(largestLimit),
	}
}

// observe folds one traversal entry into the accumulated state. Directory
// exclusion has already been enforced by the walker, so every entry seen
// here is retained.
func (a *aggregator) observe(e walker.Entry) {
	if e.Dir {
		a.observeDir(e)
		return
	}
	a.observeFile(e)
}

func (a *aggregator) observeDir(e walker.Entry) {
	// Create the stats entry even for an empty directory so it appears
	// in snapshots.
	if _, ok := a.stats[e.Path]; !ok {
		a.stats[e.Path] = snapshot.DirStats{}
	}
	if e.Path == a.root {
		return
	}

	parent := filepath.Dir(e.Path)
	a.children[parent] = append(a.children[parent], e.Path)
	st := a.stats[parent]
	st.DirectDirs++
	a.stats[parent] = st
}

func (a *aggregator) observeFile(e walker.Entry) {
	if !a.filters.MatchFile(e.Path, e.Size) {
		return
	}

	rec := snapshot.FileRecord{Path: e.Path, Name: e.Name, SizeBytes: e.Size}
	parent := filepath.Dir(e.Path)
	a.files[parent] = append(a.files[parent], rec)

	st := a.stats[parent]
	st.DirectBytes += e.Size
	st.DirectFiles++
	a.stats[parent] = st

	a.largest.offer(rec)
}

// summary materializes an immutable snapshot of the current state.
func (a *aggregator) summary(elapsed time.Duration) *snapshot.Summary {
	return snapshot.Build(a.root, a.stats, a.children, a.files, a.largest.snapshot(), elapsed)
}
