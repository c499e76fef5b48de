// Package priority maps the coarse scan priority mode and throttle level
// onto concrete scheduling policy: parallelism degree, progress-emission
// cadence, and throttle cadence. The mappings are fixed policy constants,
// deterministic given the enum values.
package priority

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Mode controls parallelism and progress cadence.
type Mode int

const (
	// Performance uses all available execution units and emits most often.
	Performance Mode = iota
	// Balanced uses half the available execution units, rounded up.
	Balanced
	// Low runs fully sequential with the sparsest progress cadence.
	Low
)

// ThrottleLevel injects periodic pauses to cap resource consumption.
type ThrottleLevel int

const (
	ThrottleOff ThrottleLevel = iota
	ThrottleLow
	ThrottleMedium
	ThrottleHigh
)

// ErrInvalidMode indicates that a priority mode string could not be parsed.
var ErrInvalidMode = errors.New("invalid priority mode")

// ErrInvalidThrottleLevel indicates that a throttle level string could not be parsed.
var ErrInvalidThrottleLevel = errors.New("invalid throttle level")

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Performance:
		return "performance"
	case Balanced:
		return "balanced"
	case Low:
		return "low"
	default:
		return "balanced"
	}
}

// ParseMode parses a string into a Mode (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "performance":
		return Performance, nil
	case "balanced":
		return Balanced, nil
	case "low":
		return Low, nil
	default:
		return Balanced, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// MarshalText encodes the mode as its lower-case name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode from its lower-case name.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// String returns the string representation of the throttle level.
func (t ThrottleLevel) String() string {
	switch t {
	case ThrottleOff:
		return "off"
	case ThrottleLow:
		return "low"
	case ThrottleMedium:
		return "medium"
	case ThrottleHigh:
		return "high"
	default:
		return "off"
	}
}

// ParseThrottleLevel parses a string into a ThrottleLevel (case-insensitive).
func ParseThrottleLevel(s string) (ThrottleLevel, error) {
	switch strings.ToLower(s) {
	case "off":
		return ThrottleOff, nil
	case "low":
		return ThrottleLow, nil
	case "medium":
		return ThrottleMedium, nil
	case "high":
		return ThrottleHigh, nil
	default:
		return ThrottleOff, fmt.Errorf("%w: %q", ErrInvalidThrottleLevel, s)
	}
}

// MarshalText encodes the throttle level as its lower-case name.
func (t ThrottleLevel) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a throttle level from its lower-case name.
func (t *ThrottleLevel) UnmarshalText(text []byte) error {
	level, err := ParseThrottleLevel(string(text))
	if err != nil {
		return err
	}
	*t = level
	return nil
}

// Throttle pauses the consumer for Pause after every EveryEntries entries.
type Throttle struct {
	EveryEntries int64
	Pause        time.Duration
}

// Profile is the resolved scheduling policy for one scan.
type Profile struct {
	// Workers is the parallelism degree for directory enumeration.
	// 1 means fully sequential.
	Workers int

	// EmitEvery and EmitInterval set the progress cadence: a snapshot is
	// emitted when the consumed-entry count crosses EmitEvery or when
	// EmitInterval has elapsed since the last emission.
	EmitEvery    int64
	EmitInterval time.Duration

	// Throttle is nil when throttling is off.
	Throttle *Throttle
}

// Resolve maps a priority mode and throttle level to a Profile.
func Resolve(mode Mode, level ThrottleLevel) Profile {
	p := Profile{Workers: workersFor(mode)}

	switch mode {
	case Performance:
		p.EmitEvery, p.EmitInterval = 1200, 160*time.Millisecond
	case Low:
		p.EmitEvery, p.EmitInterval = 3200, 360*time.Millisecond
	default:
		p.EmitEvery, p.EmitInterval = 2000, 250*time.Millisecond
	}

	switch level {
	case ThrottleLow:
		p.Throttle = &Throttle{EveryEntries: 1200, Pause: time.Millisecond}
	case ThrottleMedium:
		p.Throttle = &Throttle{EveryEntries: 600, Pause: 3 * time.Millisecond}
	case ThrottleHigh:
		p.Throttle = &Throttle{EveryEntries: 250, Pause: 6 * time.Millisecond}
	}

	return p
}

// workersFor resolves the parallelism degree from the available execution units.
func workersFor(mode Mode) int {
	available := runtime.NumCPU()
	switch mode {
	case Performance:
		return max(available, 1)
	case Low:
		return 1
	default:
		return max((available+1)/2, 1)
	}
}
