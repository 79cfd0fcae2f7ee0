package roles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// scriptedProfiles returns one scripted result per call, then repeats the
// last one.
type scriptedProfiles struct {
	results []result
	calls   int
}

type result struct {
	profile *models.Profile
	err     error
}

func (s *scriptedProfiles) GetByUserID(context.Context, primitive.ObjectID) (*models.Profile, error) {
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	r := s.results[i]
	return r.profile, r.err
}

// instant replaces the retry pause so tests never actually wait.
func instant(r *Resolver) *int {
	var slept int
	r.sleep = func(context.Context, time.Duration) bool {
		slept++
		return true
	}
	return &slept
}

func profileWithRole(role string) *models.Profile {
	return &models.Profile{UserID: primitive.NewObjectID(), Role: role}
}

func TestResolve_FirstAttempt(t *testing.T) {
	profiles := &scriptedProfiles{results: []result{{profile: profileWithRole("admin")}}}
	r := New(profiles, zap.NewNop())
	slept := instant(r)

	got := r.Resolve(context.Background(), primitive.NewObjectID())
	if got != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", got, models.RoleAdmin)
	}
	if profiles.calls != 1 {
		t.Errorf("expected 1 read, got %d", profiles.calls)
	}
	if *slept != 0 {
		t.Errorf("expected no retry pause, slept %d times", *slept)
	}
}

func TestResolve_SucceedsOnRetry(t *testing.T) {
	// Profile lands between the second and third read.
	profiles := &scriptedProfiles{results: []result{
		{},
		{},
		{profile: profileWithRole("client")},
	}}
	r := New(profiles, zap.NewNop())
	slept := instant(r)

	got := r.Resolve(context.Background(), primitive.NewObjectID())
	if got != models.RoleClient {
		t.Errorf("role: got %q, want %q", got, models.RoleClient)
	}
	if profiles.calls != 3 {
		t.Errorf("expected 3 reads, got %d", profiles.calls)
	}
	if *slept != 2 {
		t.Errorf("expected 2 pauses, got %d", *slept)
	}
}

func TestResolve_ExhaustsToUnknown(t *testing.T) {
	profiles := &scriptedProfiles{results: []result{{}}}
	r := New(profiles, zap.NewNop())
	slept := instant(r)

	got := r.Resolve(context.Background(), primitive.NewObjectID())
	if got != models.RoleUnknown {
		t.Errorf("role: got %q, want unknown", got)
	}
	if profiles.calls != Attempts {
		t.Errorf("expected %d reads, got %d", Attempts, profiles.calls)
	}
	// No pause after the final attempt.
	if *slept != Attempts-1 {
		t.Errorf("expected %d pauses, got %d", Attempts-1, *slept)
	}
}

func TestResolve_ReadErrorsRetryThenUnknown(t *testing.T) {
	profiles := &scriptedProfiles{results: []result{{err: errors.New("timeout")}}}
	r := New(profiles, zap.NewNop())
	instant(r)

	if got := r.Resolve(context.Background(), primitive.NewObjectID()); got != models.RoleUnknown {
		t.Errorf("role: got %q, want unknown", got)
	}
	if profiles.calls != Attempts {
		t.Errorf("expected %d reads, got %d", Attempts, profiles.calls)
	}
}

func TestResolve_CorruptRoleIsUnknown(t *testing.T) {
	profiles := &scriptedProfiles{results: []result{{profile: profileWithRole("superuser")}}}
	r := New(profiles, zap.NewNop())
	instant(r)

	if got := r.Resolve(context.Background(), primitive.NewObjectID()); got != models.RoleUnknown {
		t.Errorf("role: got %q, want unknown for unrecognized stored role", got)
	}
	// A present-but-corrupt row resolves immediately; no retries.
	if profiles.calls != 1 {
		t.Errorf("expected 1 read, got %d", profiles.calls)
	}
}

func TestResolve_CancelledContextStopsRetrying(t *testing.T) {
	profiles := &scriptedProfiles{results: []result{{}}}
	r := New(profiles, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	got := r.Resolve(ctx, primitive.NewObjectID())
	if got != models.RoleUnknown {
		t.Errorf("role: got %q, want unknown", got)
	}
	if profiles.calls != 1 {
		t.Errorf("expected 1 read before bailing, got %d", profiles.calls)
	}
	if elapsed := time.Since(start); elapsed > RetryDelay {
		t.Errorf("resolver waited %v with a dead context", elapsed)
	}
}
