// internal/app/store/profiles/profilestore.go

// Package profilestore manages the access-control records behind role
// resolution. At most one profile exists per user; the unique index on
// user_id is what makes the reconciler's insert-or-ignore safe under
// concurrent logins.
package profilestore

import (
	"context"
	"errors"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/normalize"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

// GetByUserID loads the profile for a user. A missing row is not an error:
// it returns (nil, nil) so callers can distinguish "no profile yet" from a
// transport failure.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert creates a profile row. A duplicate-key rejection means another
// request already created the row, which callers treat the same as having
// created it here, so Insert reports (false, nil) in that case.
func (s *Store) Insert(ctx context.Context, p models.Profile) (created bool, err error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.Email = normalize.Email(p.Email)
	p.FullName = normalize.Name(p.FullName)
	p.Role = normalize.Role(p.Role)
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetRole updates the role on an existing profile. Returns
// mongo.ErrNoDocuments when the user has no profile row.
func (s *Store) SetRole(ctx context.Context, userID primitive.ObjectID, role models.Role) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"role":       string(role),
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PromoteToAdminByEmail grants the admin role to the profile with the given
// email. A no-op when no such profile exists yet; startup retries on every
// boot so the promotion lands once the account signs in.
func (s *Store) PromoteToAdminByEmail(ctx context.Context, email string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{
			"role":       string(models.RoleAdmin),
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// List returns all profiles sorted by creation time, newest first.
func (s *Store) List(ctx context.Context) ([]models.Profile, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Profile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
