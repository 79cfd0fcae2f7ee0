// internal/app/system/roles/roles.go

// Package roles resolves a user's role from their profile row. Resolution
// retries briefly because a brand-new user's profile may still be landing
// when their first dashboard request arrives; after the retries are spent
// the resolver reports RoleUnknown and callers fail open to the client
// dashboard.
package roles

import (
	"context"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/metrics"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	// Attempts is the total number of profile reads before giving up.
	Attempts = 3
	// RetryDelay is the fixed pause between attempts.
	RetryDelay = 500 * time.Millisecond
)

// ProfileReader is the slice of the profile store the resolver needs.
// A missing row returns (nil, nil).
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
}

// Resolver looks up roles with bounded retries.
type Resolver struct {
	profiles ProfileReader
	log      *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) bool
}

func New(profiles ProfileReader, logger *zap.Logger) *Resolver {
	return &Resolver{
		profiles: profiles,
		log:      logger,
		sleep:    sleepCtx,
	}
}

// Resolve returns the user's role, retrying up to Attempts times when the
// profile row is missing or unreadable. It never returns an error: any
// terminal failure is RoleUnknown, which no caller treats as staff.
func (r *Resolver) Resolve(ctx context.Context, userID primitive.ObjectID) models.Role {
	for attempt := 1; attempt <= Attempts; attempt++ {
		p, err := r.profiles.GetByUserID(ctx, userID)
		if err != nil {
			r.log.Warn("role lookup failed",
				zap.String("user_id", userID.Hex()),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		if p != nil {
			return models.ParseRole(p.Role)
		}

		metrics.RoleRetries.Inc()
		if attempt < Attempts {
			if !r.sleep(ctx, RetryDelay) {
				break
			}
		}
	}

	r.log.Warn("role unresolved after retries",
		zap.String("user_id", userID.Hex()),
		zap.Int("attempts", Attempts))
	return models.RoleUnknown
}

// sleepCtx waits for d or until the context ends. Reports false when the
// context ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
