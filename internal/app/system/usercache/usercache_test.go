package usercache

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
)

type countingFetcher struct {
	calls int
	users map[string]*auth.SessionUser
}

func (f *countingFetcher) FetchUser(_ context.Context, userID string) *auth.SessionUser {
	f.calls++
	return f.users[userID]
}

func TestFetchUser_CachesWithinTTL(t *testing.T) {
	inner := &countingFetcher{users: map[string]*auth.SessionUser{
		"u1": {ID: "u1", Role: "client"},
	}}
	c := New(inner, time.Minute)

	ctx := context.Background()
	c.FetchUser(ctx, "u1")
	c.FetchUser(ctx, "u1")

	if inner.calls != 1 {
		t.Errorf("expected 1 inner fetch, got %d", inner.calls)
	}
}

func TestFetchUser_ExpiresAfterTTL(t *testing.T) {
	inner := &countingFetcher{users: map[string]*auth.SessionUser{
		"u1": {ID: "u1"},
	}}
	c := New(inner, time.Minute)

	base := time.Now()
	c.now = func() time.Time { return base }

	ctx := context.Background()
	c.FetchUser(ctx, "u1")

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	c.FetchUser(ctx, "u1")

	if inner.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", inner.calls)
	}
}

func TestFetchUser_NilNotCached(t *testing.T) {
	inner := &countingFetcher{users: map[string]*auth.SessionUser{}}
	c := New(inner, time.Minute)

	ctx := context.Background()
	c.FetchUser(ctx, "gone")
	c.FetchUser(ctx, "gone")

	if inner.calls != 2 {
		t.Errorf("expected nil results to bypass cache, got %d calls", inner.calls)
	}
}

func TestSignedOutEventClearsEntry(t *testing.T) {
	inner := &countingFetcher{users: map[string]*auth.SessionUser{
		"u1": {ID: "u1"},
	}}
	c := New(inner, time.Minute)
	bus := auth.NewEventBus()
	unsub := c.SubscribeInvalidation(bus)
	defer unsub()

	ctx := context.Background()
	c.FetchUser(ctx, "u1")

	bus.Publish(auth.EventSignedOut, &auth.Session{UserID: "u1"})

	c.FetchUser(ctx, "u1")
	if inner.calls != 2 {
		t.Errorf("expected refetch after signed-out invalidation, got %d calls", inner.calls)
	}
}

func TestSignedOutWithoutSessionClearsAll(t *testing.T) {
	inner := &countingFetcher{users: map[string]*auth.SessionUser{
		"u1": {ID: "u1"},
		"u2": {ID: "u2"},
	}}
	c := New(inner, time.Minute)
	bus := auth.NewEventBus()
	defer c.SubscribeInvalidation(bus)()

	ctx := context.Background()
	c.FetchUser(ctx, "u1")
	c.FetchUser(ctx, "u2")

	bus.Publish(auth.EventSignedOut, nil)

	c.FetchUser(ctx, "u1")
	c.FetchUser(ctx, "u2")
	if inner.calls != 4 {
		t.Errorf("expected full clear, got %d calls", inner.calls)
	}
}

func TestSignedInEventDoesNotClear(t *testing.T) {
	inner := &countingFetcher{users: map[string]*auth.SessionUser{
		"u1": {ID: "u1"},
	}}
	c := New(inner, time.Minute)
	bus := auth.NewEventBus()
	defer c.SubscribeInvalidation(bus)()

	ctx := context.Background()
	c.FetchUser(ctx, "u1")
	bus.Publish(auth.EventSignedIn, &auth.Session{UserID: "u1"})
	c.FetchUser(ctx, "u1")

	if inner.calls != 1 {
		t.Errorf("signed-in event should not invalidate, got %d calls", inner.calls)
	}
}
