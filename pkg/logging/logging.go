// Package logging provides structured logging for the dragabyte scanning
// engine and CLI, built on charmbracelet/log with per-component loggers.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger := logging.Get("scan")
//	logger.Info("scan started", "root", root)
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a charmbracelet/log level.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the log level (debug, info, warn, error). Empty means info.
	Level string

	// Path is the log file path. Empty writes to stderr instead.
	Path string
}

var (
	mu      sync.Mutex
	root    *log.Logger
	logFile *os.File
)

// DefaultLogPath returns the XDG state path for the log file.
func DefaultLogPath() string {
	path, err := xdg.StateFile(filepath.Join("dragabyte", "dragabyte.log"))
	if err != nil {
		return filepath.Join(os.TempDir(), "dragabyte.log")
	}
	return path
}

// Init initializes the logging system. Safe to call more than once; the
// last configuration wins.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = file
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file
	root = log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return nil
}

// Get returns a logger for the named component. Components share the root
// configuration; the name appears as the logger prefix.
func Get(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		root = log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel, ReportTimestamp: true})
	}
	return root.WithPrefix(component)
}

// Close flushes and closes the log file, if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	root = nil
}
