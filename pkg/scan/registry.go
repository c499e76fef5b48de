package scan

import (
	"sync"
	"sync/atomic"
)

// Token is the shared cancellation flag for one scan session. The owning
// side sets it, the scan loop only reads it.
type Token struct {
	cancelled atomic.Bool
}

// Cancel requests cooperative cancellation.
func (t *Token) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested.
func (t *Token) Cancelled() bool {
	return t.cancelled.Load()
}

// registry maps session keys to cancellation tokens, at most one active
// scan per key. Insert, cancel, and remove are rare relative to per-entry
// work, so a single mutex suffices.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*Token
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*Token)}
}

// begin installs a fresh token for key. Any existing token is flipped
// first, cancelling the prior scan for the same key.
func (r *registry) begin(key string) *Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[key]; ok {
		existing.Cancel()
	}
	token := &Token{}
	r.sessions[key] = token
	return token
}

// cancel flips the token for key. A no-op if no scan is active for the key.
func (r *registry) cancel(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.sessions[key]; ok {
		token.Cancel()
	}
}

// retire removes the entry for key, but only while token is still the
// installed one. A newer scan for the same key must not lose its token to
// a stale owner exiting late.
func (r *registry) retire(key string, token *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.sessions[key]; ok && current == token {
		delete(r.sessions, key)
	}
}

// active returns the number of sessions with an installed token.
func (r *registry) active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
