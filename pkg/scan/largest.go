package scan

import (
	"sort"

	"github.com/pureportal/dragabyte/pkg/scan/snapshot"
)

// largestLimit is the capacity of the largest-files set.
const largestLimit = 10

// largestSet is a bounded collection of the largest files seen, kept
// sorted descending by size. Zero-byte files are never admitted.
type largestSet struct {
	limit   int
	records []snapshot.FileRecord
}

func newLargestSet(limit int) *largestSet {
	return &largestSet{limit: limit, records: make([]snapshot.FileRecord, 0, limit)}
}

// offer considers a file for membership. Below capacity it is inserted
// unconditionally; at capacity only if it beats the current minimum.
func (s *largestSet) offer(rec snapshot.FileRecord) {
	if rec.SizeBytes == 0 {
		return
	}

	if len(s.records) < s.limit {
		s.records = append(s.records, rec)
		s.sort()
		return
	}

	smallest := s.records[len(s.records)-1].SizeBytes
	if rec.SizeBytes <= smallest {
		return
	}
	s.records = append(s.records, rec)
	s.sort()
	s.records = s.records[:s.limit]
}

func (s *largestSet) sort() {
	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].SizeBytes > s.records[j].SizeBytes
	})
}

// snapshot returns a copy of the current set.
func (s *largestSet) snapshot() []snapshot.FileRecord {
	return append([]snapshot.FileRecord{}, s.records...)
}
