package filter

import (
	"errors"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCompileRejectsInvalidSizeBounds(t *testing.T) {
	_, err := Compile(Spec{
		MinSizeBytes: int64Ptr(100),
		MaxSizeBytes: int64Ptr(50),
	})
	if !errors.Is(err, ErrInvalidSizeBounds) {
		t.Fatalf("expected ErrInvalidSizeBounds, got %v", err)
	}
}

func TestCompileAcceptsEqualBounds(t *testing.T) {
	c, err := Compile(Spec{
		MinSizeBytes: int64Ptr(50),
		MaxSizeBytes: int64Ptr(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.MatchFile("/data/a.txt", 50) {
		t.Error("file at exact bound should pass")
	}
	if c.MatchFile("/data/a.txt", 51) {
		t.Error("file above max should fail")
	}
}

func TestCompileRejectsInvalidPatterns(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{name: "bad include regex", spec: Spec{IncludeRegex: "["}},
		{name: "bad exclude regex", spec: Spec{ExcludeRegex: "(unclosed"}},
		{name: "bad include glob", spec: Spec{IncludeGlobs: []string{"[unclosed"}}},
		{name: "bad exclude glob", spec: Spec{ExcludeGlobs: []string{"[unclosed"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.spec); !errors.Is(err, ErrInvalidPattern) {
				t.Errorf("expected ErrInvalidPattern, got %v", err)
			}
		})
	}
}

func TestMatchFile(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		path string
		size int64
		want bool
	}{
		{
			name: "no rules passes everything",
			spec: Spec{},
			path: "/data/a.txt", size: 10, want: true,
		},
		{
			name: "below min size",
			spec: Spec{MinSizeBytes: int64Ptr(100)},
			path: "/data/a.txt", size: 99, want: false,
		},
		{
			name: "above max size",
			spec: Spec{MaxSizeBytes: int64Ptr(100)},
			path: "/data/a.txt", size: 101, want: false,
		},
		{
			name: "excluded extension",
			spec: Spec{ExcludeExtensions: []string{"log"}},
			path: "/data/b.log", size: 10, want: false,
		},
		{
			name: "excluded extension normalizes dot and case",
			spec: Spec{ExcludeExtensions: []string{".LOG"}},
			path: "/data/b.log", size: 10, want: false,
		},
		{
			name: "include extension matches",
			spec: Spec{IncludeExtensions: []string{"txt"}},
			path: "/data/a.TXT", size: 10, want: true,
		},
		{
			name: "include extension rejects non-matching even without excludes",
			spec: Spec{IncludeExtensions: []string{"txt"}},
			path: "/data/b.log", size: 10, want: false,
		},
		{
			name: "dotfile has no extension",
			spec: Spec{IncludeExtensions: []string{"gitignore"}},
			path: "/data/.gitignore", size: 10, want: false,
		},
		{
			name: "exclude name substring",
			spec: Spec{ExcludeNames: []string{"cache"}},
			path: "/data/my-cache.bin", size: 10, want: false,
		},
		{
			name: "include name substring case-insensitive",
			spec: Spec{IncludeNames: []string{"report"}},
			path: "/data/Q3-REPORT.pdf", size: 10, want: true,
		},
		{
			name: "exclude path substring",
			spec: Spec{ExcludePaths: []string{"node_modules"}},
			path: "/app/node_modules/lib/index.js", size: 10, want: false,
		},
		{
			name: "include regex on lower-cased path",
			spec: Spec{IncludeRegex: `\.tmp$`},
			path: "/data/x.TMP", size: 10, want: true,
		},
		{
			name: "exclude regex wins over include rule",
			spec: Spec{IncludeExtensions: []string{"txt"}, ExcludeRegex: "secret"},
			path: "/data/secret/a.txt", size: 10, want: false,
		},
		{
			name: "exclude glob on full path",
			spec: Spec{ExcludeGlobs: []string{"**/build/**"}},
			path: "/repo/build/out.bin", size: 10, want: false,
		},
		{
			name: "include glob matches",
			spec: Spec{IncludeGlobs: []string{"**/*.iso"}},
			path: "/images/disk.iso", size: 10, want: true,
		},
		{
			name: "any include rule suffices",
			spec: Spec{IncludeExtensions: []string{"mkv"}, IncludeNames: []string{"backup"}},
			path: "/data/backup.tar", size: 10, want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.spec)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			if got := c.MatchFile(tt.path, tt.size); got != tt.want {
				t.Errorf("MatchFile(%q, %d) = %v, want %v", tt.path, tt.size, got, tt.want)
			}
		})
	}
}

func TestSkipDir(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		path string
		want bool
	}{
		{
			name: "no rules keeps everything",
			spec: Spec{},
			path: "/data/sub", want: false,
		},
		{
			name: "include rules never prune directories",
			spec: Spec{IncludeExtensions: []string{"txt"}, IncludeNames: []string{"src"}},
			path: "/data/sub", want: false,
		},
		{
			name: "exclude extension does not apply to directories",
			spec: Spec{ExcludeExtensions: []string{"git"}},
			path: "/data/repo.git", want: false,
		},
		{
			name: "exclude name substring prunes",
			spec: Spec{ExcludeNames: []string{"node_modules"}},
			path: "/app/node_modules", want: true,
		},
		{
			name: "exclude path substring prunes",
			spec: Spec{ExcludePaths: []string{"/.git"}},
			path: "/repo/.git", want: true,
		},
		{
			name: "exclude regex prunes",
			spec: Spec{ExcludeRegex: `cache$`},
			path: "/home/user/.Cache", want: true,
		},
		{
			name: "exclude glob prunes",
			spec: Spec{ExcludeGlobs: []string{"**/target"}},
			path: "/repo/target", want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(tt.spec)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			if got := c.SkipDir(tt.path); got != tt.want {
				t.Errorf("SkipDir(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// TestCompileIdempotent verifies that compiling the same spec twice yields
// matchers that classify entries identically.
func TestCompileIdempotent(t *testing.T) {
	spec := Spec{
		IncludeExtensions: []string{"txt", ".MD"},
		ExcludeNames:      []string{"Cache", "cache"},
		ExcludePaths:      []string{"/tmp"},
		IncludeRegex:      `report`,
		MinSizeBytes:      int64Ptr(5),
	}

	first, err := Compile(spec)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	second, err := Compile(spec)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	paths := []struct {
		path string
		size int64
	}{
		{"/data/a.txt", 10},
		{"/data/a.txt", 1},
		{"/data/notes.md", 10},
		{"/tmp/a.txt", 10},
		{"/data/my-cache.txt", 10},
		{"/data/report.bin", 10},
		{"/data/other.bin", 10},
	}
	for _, p := range paths {
		if first.MatchFile(p.path, p.size) != second.MatchFile(p.path, p.size) {
			t.Errorf("matchers disagree on %q size=%d", p.path, p.size)
		}
	}
	for _, dir := range []string{"/data/sub", "/tmp/sub", "/data/cache"} {
		if first.SkipDir(dir) != second.SkipDir(dir) {
			t.Errorf("matchers disagree on dir %q", dir)
		}
	}
}

func TestNormalizeListPreservesOrderAndDeduplicates(t *testing.T) {
	got := normalizeList([]string{" B ", "a", "b", "", "A"})
	want := []string{"b", "a"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
