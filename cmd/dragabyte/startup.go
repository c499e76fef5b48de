package main

import (
	"os"
	"strings"
)

// ResolveStartupPath returns a scan path passed as the first process
// argument, as happens when the binary is launched from a file manager.
// Flag-like arguments and paths that do not exist resolve to "".
func ResolveStartupPath(args []string) string {
	if len(args) < 2 {
		return ""
	}
	candidate := args[1]
	if strings.HasPrefix(candidate, "-") {
		return ""
	}
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
