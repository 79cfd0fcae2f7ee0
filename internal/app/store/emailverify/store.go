// internal/app/store/emailverify/store.go

// Package emailverify manages the one-time confirmation tokens mailed at
// signup. Tokens are single-use UUIDs carried in a magic link; a TTL index
// cleans up whatever was never clicked.
package emailverify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultExpiry is how long a confirmation link stays valid.
const DefaultExpiry = 24 * time.Hour

// ErrNotFound is returned when a token does not exist, was already used,
// or has expired. Callers cannot distinguish the three cases.
var ErrNotFound = errors.New("verification not found or expired")

// Verification is a pending email confirmation.
type Verification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Email     string             `bson:"email"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store. A non-positive expiry falls back to DefaultExpiry.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{c: db.Collection("email_verifications"), expiry: expiry}
}

// Expiry returns how long issued tokens stay valid.
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// EnsureIndexes creates the token lookup index and the TTL index that
// expires stale records.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_emailverify_token"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_emailverify_user"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_emailverify_expires_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create issues a fresh token for the user, replacing any earlier pending
// verification so only the newest link works.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID, email string) (token string, err error) {
	if _, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	v := Verification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return "", err
	}
	return v.Token, nil
}

// Consume validates and deletes a token in one step so it can never be
// used twice. Returns ErrNotFound for missing, used, or expired tokens.
func (s *Store) Consume(ctx context.Context, token string) (*Verification, error) {
	var v Verification
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// CleanupExpired removes expired records. A backup for when TTL index
// cleanup is delayed.
func (s *Store) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
