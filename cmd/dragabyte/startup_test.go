package main

import (
	"path/filepath"
	"testing"
)

func TestResolveStartupPath(t *testing.T) {
	existing := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no argument", args: []string{"dragabyte"}, want: ""},
		{name: "existing path", args: []string{"dragabyte", existing}, want: existing},
		{name: "flag argument", args: []string{"dragabyte", "--json"}, want: ""},
		{name: "missing path", args: []string{"dragabyte", filepath.Join(existing, "absent")}, want: ""},
		{name: "empty args", args: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStartupPath(tt.args); got != tt.want {
				t.Errorf("ResolveStartupPath(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
