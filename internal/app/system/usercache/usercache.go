// Package usercache holds a short-TTL cache of session users so the header
// widget does not hit the database on every request. The dashboard routing
// flow never reads this cache; it always re-fetches, trading efficiency for
// freshness. Entries are invalidated on sign-out (via the auth event bus)
// so stale per-user data is never served to the next identity on the same
// device, and expire on their own so mid-session role changes surface
// within the TTL.
package usercache

import (
	"context"
	"sync"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
)

// DefaultTTL bounds how stale a cached session user may be.
const DefaultTTL = 30 * time.Second

type entry struct {
	user      *auth.SessionUser
	expiresAt time.Time
}

// Cache wraps a UserFetcher with per-user TTL caching. It implements
// auth.UserFetcher itself, so it slots into SessionManager.SetUserFetcher.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	inner   auth.UserFetcher
	ttl     time.Duration
	now     func() time.Time
}

// New wraps inner with a cache. A non-positive ttl uses DefaultTTL.
func New(inner auth.UserFetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]entry),
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
	}
}

// FetchUser returns the cached user when fresh, otherwise delegates to the
// wrapped fetcher. Negative results (nil) are not cached: a disabled or
// deleted account must stay gone, and a transient lookup failure should not
// lock a user out for a whole TTL.
func (c *Cache) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	c.mu.Lock()
	if e, ok := c.entries[userID]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.user
	}
	c.mu.Unlock()

	u := c.inner.FetchUser(ctx, userID)
	if u == nil {
		c.Invalidate(userID)
		return nil
	}

	c.mu.Lock()
	c.entries[userID] = entry{user: u, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return u
}

// Invalidate drops the cached entry for one user.
func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// SubscribeInvalidation registers the cache on the auth event bus: a
// signed-out session invalidates its user's entry, or the whole cache when
// the session is unknown. Returns the unsubscribe capability.
func (c *Cache) SubscribeInvalidation(bus *auth.EventBus) func() {
	return bus.Subscribe(func(e auth.Event, sess *auth.Session) {
		if e != auth.EventSignedOut {
			return
		}
		if sess == nil {
			c.Clear()
			return
		}
		c.Invalidate(sess.UserID)
	})
}
