// Package snapshot builds immutable hierarchical summaries of scan state.
// A Summary is the unit of every published scan event; once built it shares
// no mutable state with the live accumulator.
package snapshot

// FileRecord describes one file retained by the scan.
type FileRecord struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"sizeBytes"`
}

// DirStats holds the counts attributable to a directory's immediate
// children only, excluding descendants.
type DirStats struct {
	DirectBytes int64
	DirectFiles int64
	DirectDirs  int64
}

// Node is one directory in a snapshot tree. SizeBytes, FileCount, and
// DirCount are aggregates over the node and all its descendants. Children
// are sorted descending by aggregate size.
type Node struct {
	Path      string       `json:"path"`
	Name      string       `json:"name"`
	SizeBytes int64        `json:"sizeBytes"`
	FileCount int64        `json:"fileCount"`
	DirCount  int64        `json:"dirCount"`
	Files     []FileRecord `json:"files"`
	Children  []*Node      `json:"children"`
}

// Summary is a point-in-time hierarchical view of a scan.
type Summary struct {
	Root         *Node        `json:"root"`
	TotalBytes   int64        `json:"totalBytes"`
	FileCount    int64        `json:"fileCount"`
	DirCount     int64        `json:"dirCount"`
	LargestFiles []FileRecord `json:"largestFiles"`
	DurationMs   int64        `json:"durationMs"`
}
