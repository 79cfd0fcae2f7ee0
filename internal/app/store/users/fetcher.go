// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/normalize"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher, loading fresh user data on each
// request so the header widget and route guards never act on stale role
// information. The role comes from the profiles collection; a user with no
// profile row yet gets an empty role, which every guard treats as
// non-staff.
type Fetcher struct {
	users    *mongo.Collection
	profiles *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{
		users:    db.Collection("users"),
		profiles: db.Collection("profiles"),
	}
}

// FetchUser retrieves a user by ID and returns nil if the user is not
// found, disabled, or if any error occurs.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.User
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"email":     1,
		"status":    1,
	})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		return nil
	}
	if normalize.Status(u.Status) == "disabled" {
		return nil
	}

	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
	}

	// Missing profile rows are expected for brand-new users; the role stays
	// empty until the reconciler has run.
	var p models.Profile
	roleProj := options.FindOne().SetProjection(bson.M{"role": 1})
	if err := f.profiles.FindOne(ctx, bson.M{"user_id": oid}, roleProj).Decode(&p); err == nil {
		su.Role = string(models.ParseRole(p.Role))
	}

	return su
}
