// internal/app/system/auth/events.go
package auth

import "sync"

// Event identifies an auth state transition.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// EventHandler receives an auth event and the session it concerns. The
// session is nil for EventSignedOut when no session existed (sign-out is
// idempotent).
type EventHandler func(Event, *Session)

// EventBus fans auth state transitions out to subscribers. Subscribe
// returns an unsubscribe capability that the owning scope must invoke on
// teardown to avoid leaking listeners; calling it more than once is safe.
//
// The canonical subscriber, registered in bootstrap, invalidates the
// per-user session cache on EventSignedOut so stale per-user data is never
// shown to the next signed-in identity on the same device.
type EventBus struct {
	mu   sync.Mutex
	next int
	subs map[int]EventHandler
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[int]EventHandler)}
}

// Subscribe registers handler and returns its unsubscribe function.
func (b *EventBus) Subscribe(handler EventHandler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every subscriber, synchronously and in no
// particular order. Handlers run outside the bus lock so a handler may
// subscribe or unsubscribe without deadlocking.
func (b *EventBus) Publish(event Event, sess *Session) {
	b.mu.Lock()
	handlers := make([]EventHandler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(event, sess)
	}
}
