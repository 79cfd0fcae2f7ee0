// internal/app/system/reconcile/reconcile.go

// Package reconcile guarantees that every authenticated user has a profile
// row and a client row before any dashboard renders. Creation is lazy and
// race-safe: inserts ride on unique user_id indexes, and losing the race
// to a concurrent login counts as success.
package reconcile

import (
	"context"

	"github.com/kestrelworks/clienthub/internal/app/system/metrics"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProfileStore is the slice of the profile store the reconciler needs.
// Insert reports created=false with a nil error when the row already
// existed (duplicate-key rejection).
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	Insert(ctx context.Context, p models.Profile) (created bool, err error)
}

// ClientStore is the slice of the client store the reconciler needs.
type ClientStore interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Client, error)
	Insert(ctx context.Context, c models.Client) (created bool, err error)
}

// Identity carries what the session knows about the signed-in user. The
// metadata seeds new rows; existing rows are never overwritten from it.
type Identity struct {
	UserID   primitive.ObjectID
	Email    string
	FullName string
	Metadata models.SignupMetadata
}

// Reconciler creates missing profile and client rows for signed-in users.
type Reconciler struct {
	profiles ProfileStore
	clients  ClientStore
	log      *zap.Logger
}

func New(profiles ProfileStore, clients ClientStore, logger *zap.Logger) *Reconciler {
	return &Reconciler{profiles: profiles, clients: clients, log: logger}
}

// EnsureProfileAndClient makes sure both rows exist for the identity,
// profile first, then client. It never fails the login flow: read errors
// are logged and the insert attempted anyway, since a duplicate-key
// rejection on an existing row is harmless. New profiles always get the
// client role; role upgrades only ever happen through the admin panel or
// startup promotion.
func (r *Reconciler) EnsureProfileAndClient(ctx context.Context, id Identity) {
	r.ensureProfile(ctx, id)
	r.ensureClient(ctx, id)
}

func (r *Reconciler) ensureProfile(ctx context.Context, id Identity) {
	p, err := r.profiles.GetByUserID(ctx, id.UserID)
	if err != nil {
		r.log.Warn("profile lookup failed; attempting insert",
			zap.String("user_id", id.UserID.Hex()),
			zap.Error(err))
	}
	if p != nil {
		return
	}

	created, err := r.profiles.Insert(ctx, models.Profile{
		UserID:   id.UserID,
		Email:    id.Email,
		FullName: id.displayName(),
		Role:     string(models.RoleClient),
	})
	if err != nil {
		r.log.Error("profile insert failed",
			zap.String("user_id", id.UserID.Hex()),
			zap.Error(err))
		return
	}
	if created {
		metrics.ReconcileCreates.WithLabelValues("profile").Inc()
		r.log.Info("profile created",
			zap.String("user_id", id.UserID.Hex()),
			zap.String("email", id.Email))
	}
}

func (r *Reconciler) ensureClient(ctx context.Context, id Identity) {
	c, err := r.clients.GetByUserID(ctx, id.UserID)
	if err != nil {
		r.log.Warn("client lookup failed; attempting insert",
			zap.String("user_id", id.UserID.Hex()),
			zap.Error(err))
	}
	if c != nil {
		return
	}

	created, err := r.clients.Insert(ctx, models.Client{
		UserID:      id.UserID,
		FullName:    id.displayName(),
		Email:       id.Email,
		CompanyName: id.Metadata.CompanyName,
		Phone:       id.Metadata.Phone,
		Plan:        models.NormalizePlan(id.Metadata.Plan),
	})
	if err != nil {
		r.log.Error("client insert failed",
			zap.String("user_id", id.UserID.Hex()),
			zap.Error(err))
		return
	}
	if created {
		metrics.ReconcileCreates.WithLabelValues("client").Inc()
		r.log.Info("client record created",
			zap.String("user_id", id.UserID.Hex()),
			zap.String("email", id.Email))
	}
}

// displayName prefers the signup metadata name, then the account name,
// then the email local part as a last resort.
func (id Identity) displayName() string {
	if id.Metadata.FullName != "" {
		return id.Metadata.FullName
	}
	if id.FullName != "" {
		return id.FullName
	}
	return id.Email
}
