package snapshot

import (
	"path/filepath"
	"sort"
	"time"
)

// Build composes the current accumulator state into a Summary rooted at
// root. It is pure with respect to its inputs: calling it twice on
// unchanged state yields structurally identical output, and the returned
// tree owns copies of everything it needs.
func Build(root string, stats map[string]DirStats, children map[string][]string, files map[string][]FileRecord, largest []FileRecord, elapsed time.Duration) *Summary {
	rootNode := BuildNode(root, stats, children, files)
	return &Summary{
		Root:         rootNode,
		TotalBytes:   rootNode.SizeBytes,
		FileCount:    rootNode.FileCount,
		DirCount:     rootNode.DirCount,
		LargestFiles: cloneRecords(largest),
		DurationMs:   elapsed.Milliseconds(),
	}
}

// BuildNode constructs the node tree for root from per-directory stats, the
// parent-to-children adjacency, and per-directory file lists. Traversal is
// an explicit work stack rather than recursion, so pathological nesting
// cannot exhaust the call stack, and a visited set guards against a
// malformed adjacency ever forming a cycle.
func BuildNode(root string, stats map[string]DirStats, children map[string][]string, files map[string][]FileRecord) *Node {
	type frame struct {
		node *Node
		kids []string
		next int
	}

	visited := map[string]struct{}{root: {}}
	stack := []frame{{node: newNode(root, stats, files), kids: children[root]}}

	for {
		top := &stack[len(stack)-1]
		if top.next < len(top.kids) {
			child := top.kids[top.next]
			top.next++
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			stack = append(stack, frame{node: newNode(child, stats, files), kids: children[child]})
			continue
		}

		node := top.node
		// Children aggregates are final by now; order them largest-first.
		// Stable sort keeps discovery order as the tie-break.
		sort.SliceStable(node.Children, func(i, j int) bool {
			return node.Children[i].SizeBytes > node.Children[j].SizeBytes
		})

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return node
		}

		parent := stack[len(stack)-1].node
		parent.SizeBytes += node.SizeBytes
		parent.FileCount += node.FileCount
		parent.DirCount += 1 + node.DirCount
		parent.Children = append(parent.Children, node)
	}
}

// newNode seeds a node with the directory's direct stats and a copy of its
// file list.
func newNode(path string, stats map[string]DirStats, files map[string][]FileRecord) *Node {
	st := stats[path]
	return &Node{
		Path:      path,
		Name:      filepath.Base(path),
		SizeBytes: st.DirectBytes,
		FileCount: st.DirectFiles,
		Files:     cloneRecords(files[path]),
		Children:  []*Node{},
	}
}

func cloneRecords(records []FileRecord) []FileRecord {
	return append([]FileRecord{}, records...)
}
