// Package filter compiles user-supplied filter specifications into
// matchers used on the scan hot path. A Spec is raw user input; Compile
// normalizes it once so that per-entry matching never re-processes
// strings it does not need.
package filter

import "errors"

// ErrInvalidSizeBounds indicates that the minimum size bound exceeds the maximum.
var ErrInvalidSizeBounds = errors.New("min size cannot exceed max size")

// ErrInvalidPattern indicates that a regex or glob pattern failed to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Spec is the raw filter specification as submitted by a caller.
// It is immutable once submitted; Compile never modifies it.
type Spec struct {
	// IncludeExtensions and ExcludeExtensions hold file extensions,
	// with or without the leading dot.
	IncludeExtensions []string `json:"includeExtensions"`
	ExcludeExtensions []string `json:"excludeExtensions"`

	// IncludeNames and ExcludeNames are case-insensitive substrings
	// matched against the entry's base name.
	IncludeNames []string `json:"includeNames"`
	ExcludeNames []string `json:"excludeNames"`

	// MinSizeBytes and MaxSizeBytes bound file sizes. Nil means unbounded.
	MinSizeBytes *int64 `json:"minSizeBytes,omitempty"`
	MaxSizeBytes *int64 `json:"maxSizeBytes,omitempty"`

	// IncludeRegex and ExcludeRegex are optional patterns matched against
	// the lower-cased full path. Empty means absent.
	IncludeRegex string `json:"includeRegex,omitempty"`
	ExcludeRegex string `json:"excludeRegex,omitempty"`

	// IncludePaths and ExcludePaths are case-insensitive substrings
	// matched against the full path.
	IncludePaths []string `json:"includePaths"`
	ExcludePaths []string `json:"excludePaths"`

	// IncludeGlobs and ExcludeGlobs are optional glob patterns matched
	// against the slash-separated full path.
	IncludeGlobs []string `json:"includeGlobs,omitempty"`
	ExcludeGlobs []string `json:"excludeGlobs,omitempty"`
}

// flags records which filter categories are configured so the per-entry
// hot path can skip string work for rules that are not in play.
type flags struct {
	hasIncludes     bool
	hasFileExcludes bool
	hasDirExcludes  bool
	needsPath       bool
	needsName       bool
	needsExtension  bool
}
