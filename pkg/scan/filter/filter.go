package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Compiled is a filter specification after normalization. It is built once
// per scan and safe for concurrent use; all methods are read-only.
type Compiled struct {
	includeExts map[string]struct{}
	excludeExts map[string]struct{}

	includeNames []string
	excludeNames []string
	includePaths []string
	excludePaths []string

	minSize *int64
	maxSize *int64

	includeRe *regexp.Regexp
	excludeRe *regexp.Regexp

	includeGlobs []glob.Glob
	excludeGlobs []glob.Glob

	flags flags
}

// Compile normalizes a Spec into a Compiled filter. It returns
// ErrInvalidSizeBounds when both size bounds are present and min > max, and
// ErrInvalidPattern when a regex or glob fails to compile.
func Compile(spec Spec) (*Compiled, error) {
	if spec.MinSizeBytes != nil && spec.MaxSizeBytes != nil && *spec.MinSizeBytes > *spec.MaxSizeBytes {
		return nil, ErrInvalidSizeBounds
	}

	c := &Compiled{
		includeExts:  normalizeExtensions(spec.IncludeExtensions),
		excludeExts:  normalizeExtensions(spec.ExcludeExtensions),
		includeNames: normalizeList(spec.IncludeNames),
		excludeNames: normalizeList(spec.ExcludeNames),
		includePaths: normalizeList(spec.IncludePaths),
		excludePaths: normalizeList(spec.ExcludePaths),
		minSize:      spec.MinSizeBytes,
		maxSize:      spec.MaxSizeBytes,
	}

	var err error
	if c.includeRe, err = compileRegex(spec.IncludeRegex); err != nil {
		return nil, err
	}
	if c.excludeRe, err = compileRegex(spec.ExcludeRegex); err != nil {
		return nil, err
	}
	if c.includeGlobs, err = compileGlobs(spec.IncludeGlobs); err != nil {
		return nil, err
	}
	if c.excludeGlobs, err = compileGlobs(spec.ExcludeGlobs); err != nil {
		return nil, err
	}

	c.flags = deriveFlags(c)
	return c, nil
}

// deriveFlags computes the applicability flags from the populated rule
// categories. Directories have exclude-only semantics, so extension rules
// never contribute to hasDirExcludes.
func deriveFlags(c *Compiled) flags {
	hasIncludes := len(c.includeExts) > 0 || len(c.includeNames) > 0 ||
		len(c.includePaths) > 0 || c.includeRe != nil || len(c.includeGlobs) > 0
	hasDirExcludes := len(c.excludePaths) > 0 || len(c.excludeNames) > 0 ||
		c.excludeRe != nil || len(c.excludeGlobs) > 0
	return flags{
		hasIncludes:     hasIncludes,
		hasDirExcludes:  hasDirExcludes,
		hasFileExcludes: hasDirExcludes || len(c.excludeExts) > 0,
		needsPath: len(c.includePaths) > 0 || len(c.excludePaths) > 0 ||
			c.includeRe != nil || c.excludeRe != nil ||
			len(c.includeGlobs) > 0 || len(c.excludeGlobs) > 0,
		needsName:      len(c.includeNames) > 0 || len(c.excludeNames) > 0,
		needsExtension: len(c.includeExts) > 0 || len(c.excludeExts) > 0,
	}
}

// SkipDir reports whether a directory should be pruned from the scan.
// Directories are pruned only by matching an exclude rule; include rules
// never apply to them. The scan root must not be passed here.
func (c *Compiled) SkipDir(path string) bool {
	if !c.flags.hasDirExcludes {
		return false
	}
	if c.flags.needsPath {
		lower := strings.ToLower(path)
		if c.excludeRe != nil && c.excludeRe.MatchString(lower) {
			return true
		}
		if containsAny(lower, c.excludePaths) {
			return true
		}
		if matchesAnyGlob(path, c.excludeGlobs) {
			return true
		}
	}
	if c.flags.needsName {
		return containsAny(strings.ToLower(filepath.Base(path)), c.excludeNames)
	}
	return false
}

// MatchFile reports whether a file passes the filter. A file passes only if
// it clears the size bounds, matches no exclude rule, and, when any include
// rule is configured, matches at least one include rule.
func (c *Compiled) MatchFile(path string, size int64) bool {
	if c.minSize != nil && size < *c.minSize {
		return false
	}
	if c.maxSize != nil && size > *c.maxSize {
		return false
	}

	var lowerPath, lowerName, ext string
	if c.flags.needsPath {
		lowerPath = strings.ToLower(path)
	}
	if c.flags.needsName {
		lowerName = strings.ToLower(filepath.Base(path))
	}
	if c.flags.needsExtension {
		ext = extensionOf(path)
	}

	if c.flags.hasFileExcludes {
		if c.flags.needsPath {
			if c.excludeRe != nil && c.excludeRe.MatchString(lowerPath) {
				return false
			}
			if containsAny(lowerPath, c.excludePaths) {
				return false
			}
			if matchesAnyGlob(path, c.excludeGlobs) {
				return false
			}
		}
		if c.flags.needsName && containsAny(lowerName, c.excludeNames) {
			return false
		}
		if ext != "" {
			if _, excluded := c.excludeExts[ext]; excluded {
				return false
			}
		}
	}

	if !c.flags.hasIncludes {
		return true
	}

	if c.flags.needsPath {
		if c.includeRe != nil && c.includeRe.MatchString(lowerPath) {
			return true
		}
		if containsAny(lowerPath, c.includePaths) {
			return true
		}
		if matchesAnyGlob(path, c.includeGlobs) {
			return true
		}
	}
	if c.flags.needsName && containsAny(lowerName, c.includeNames) {
		return true
	}
	if ext != "" {
		if _, included := c.includeExts[ext]; included {
			return true
		}
	}
	return false
}

// normalizeExtensions strips the leading dot, lower-cases, and deduplicates
// into a set. Empty values are dropped.
func normalizeExtensions(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		cleaned := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "."))
		if cleaned != "" {
			set[cleaned] = struct{}{}
		}
	}
	return set
}

// normalizeList trims, lower-cases, and deduplicates while preserving
// first-seen order.
func normalizeList(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	list := make([]string, 0, len(values))
	for _, value := range values {
		cleaned := strings.ToLower(strings.TrimSpace(value))
		if cleaned == "" {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		list = append(list, cleaned)
	}
	return list
}

func compileRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// extensionOf returns the lower-cased extension without the dot. Dotfiles
// such as ".gitignore" have no extension.
func extensionOf(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

func containsAny(value string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(value, s) {
			return true
		}
	}
	return false
}

func matchesAnyGlob(path string, globs []glob.Glob) bool {
	if len(globs) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	for _, g := range globs {
		if g.Match(slashed) {
			return true
		}
	}
	return false
}
