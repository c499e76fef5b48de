package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pureportal/dragabyte/pkg/scan/snapshot"
)

// renderProgress writes a single in-place progress line.
func renderProgress(w io.Writer, summary *snapshot.Summary) {
	fmt.Fprintf(w, "\r\x1b[KScanning... %s files, %s dirs, %s",
		humanize.Comma(summary.FileCount),
		humanize.Comma(summary.DirCount),
		humanize.IBytes(uint64(summary.TotalBytes)))
}

// clearProgress erases the in-place progress line.
func clearProgress(w io.Writer) {
	fmt.Fprint(w, "\r\x1b[K")
}

// renderSummary prints the final scan report: totals, the size-sorted
// directory tree down to depth, and the largest files.
func renderSummary(w io.Writer, summary *snapshot.Summary, depth int) {
	fmt.Fprintf(w, "%s\n", summary.Root.Path)
	fmt.Fprintf(w, "  %s in %s files, %s directories (%.1fs)\n\n",
		humanize.IBytes(uint64(summary.TotalBytes)),
		humanize.Comma(summary.FileCount),
		humanize.Comma(summary.DirCount),
		float64(summary.DurationMs)/1000)

	renderNode(w, summary.Root, 0, depth)

	if len(summary.LargestFiles) > 0 {
		fmt.Fprintf(w, "\nLargest files:\n")
		for _, file := range summary.LargestFiles {
			fmt.Fprintf(w, "  %10s  %s\n", humanize.IBytes(uint64(file.SizeBytes)), file.Path)
		}
	}
}

// renderNode prints node and its children, largest-first, down to maxDepth.
func renderNode(w io.Writer, node *snapshot.Node, depth, maxDepth int) {
	if depth > 0 {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%-10s %s/\n", indent, humanize.IBytes(uint64(node.SizeBytes)), node.Name)
	}
	if depth >= maxDepth {
		return
	}
	for _, child := range node.Children {
		renderNode(w, child, depth+1, maxDepth)
	}
}

// writeJSON writes the summary as indented JSON.
func writeJSON(w io.Writer, summary *snapshot.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
