package events

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned by Emit after the bus has been closed.
var ErrClosed = errors.New("event bus closed")

// Subscriber receives every event emitted on the bus. Events arrive on the
// channel in emission order; a subscriber that falls behind has events
// dropped rather than blocking the emitter.
type Subscriber struct {
	ID     string
	Events chan Event
}

// Bus fans events out to subscribers. It implements Sink.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	closed      bool
}

// NewBus creates a Bus with no subscribers.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]*Subscriber)}
}

// Subscribe registers a new subscriber with the given channel buffer.
// Returns nil if the bus is closed.
func (b *Bus) Subscribe(buffer int) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	if buffer < 1 {
		buffer = 1
	}

	sub := &Subscriber{
		ID:     uuid.New().String(),
		Events: make(chan Event, buffer),
	}
	b.subscribers[sub.ID] = sub
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		close(sub.Events)
		delete(b.subscribers, id)
	}
}

// Emit delivers an event to all subscribers. Subscribers with full channels
// miss the event.
func (b *Bus) Emit(name string, payload any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}

	event := Event{Name: name, Payload: payload}
	for _, sub := range b.subscribers {
		select {
		case sub.Events <- event:
		default:
			// Channel full, event dropped.
		}
	}
	return nil
}

// Close closes the bus and every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subscribers {
		close(sub.Events)
	}
	b.subscribers = make(map[string]*Subscriber)
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
