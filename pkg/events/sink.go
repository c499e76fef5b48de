// Package events delivers named scan events to listeners. The scan engine
// only depends on the Sink interface; how events reach a presentation
// layer is the sink's concern.
package events

// Event names published over the lifetime of a scan. Every started scan
// ends with exactly one of the three terminal events.
const (
	ScanProgress  = "scan-progress"
	ScanComplete  = "scan-complete"
	ScanCancelled = "scan-cancelled"
	ScanError     = "scan-error"
)

// Event is a named event with a serializable payload.
type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload,omitempty"`
}

// Sink accepts named events. Emit may be called from the scan's background
// goroutine; implementations must be safe for concurrent use. A non-nil
// error from Emit is logged and ignored by the engine; publication failure
// never aborts a scan.
type Sink interface {
	Emit(name string, payload any) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, payload any) error

// Emit calls f.
func (f SinkFunc) Emit(name string, payload any) error {
	return f(name, payload)
}
