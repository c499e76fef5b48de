package scan

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pureportal/dragabyte/pkg/scan/snapshot"
)

func record(name string, size int64) snapshot.FileRecord {
	return snapshot.FileRecord{Path: "/data/" + name, Name: name, SizeBytes: size}
}

func TestLargestSetSkipsZeroByteFiles(t *testing.T) {
	s := newLargestSet(largestLimit)
	s.offer(record("empty.txt", 0))
	assert.Empty(t, s.snapshot())
}

func TestLargestSetKeepsDescendingOrder(t *testing.T) {
	s := newLargestSet(largestLimit)
	s.offer(record("small.txt", 5))
	s.offer(record("big.txt", 500))
	s.offer(record("mid.txt", 50))

	got := s.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "big.txt", got[0].Name)
	assert.Equal(t, "mid.txt", got[1].Name)
	assert.Equal(t, "small.txt", got[2].Name)
}

func TestLargestSetBoundedAtCapacity(t *testing.T) {
	s := newLargestSet(largestLimit)
	for i := 1; i <= 25; i++ {
		s.offer(record(fmt.Sprintf("f%02d.bin", i), int64(i)))
	}

	got := s.snapshot()
	require.Len(t, got, largestLimit)
	// The ten largest offers survive, largest first.
	for i, rec := range got {
		assert.Equal(t, int64(25-i), rec.SizeBytes)
	}
}

func TestLargestSetRejectsAtCapacityUnlessLarger(t *testing.T) {
	s := newLargestSet(3)
	s.offer(record("a", 30))
	s.offer(record("b", 20))
	s.offer(record("c", 10))

	// Equal to the current minimum is not enough.
	s.offer(record("d", 10))
	got := s.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].Name)

	// Strictly larger displaces the minimum.
	s.offer(record("e", 15))
	got = s.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "e", got[2].Name)
}

func TestLargestSetSnapshotIsACopy(t *testing.T) {
	s := newLargestSet(largestLimit)
	s.offer(record("a", 10))

	got := s.snapshot()
	got[0].SizeBytes = 999
	assert.Equal(t, int64(10), s.snapshot()[0].SizeBytes)
}
