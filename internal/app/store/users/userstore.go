// internal/app/store/users/userstore.go
package userstore

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
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashes.
const BcryptCost = 12

var (
	// ErrEmailTaken is returned when creating a user with an email that
	// already has an account.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is returned when an email/password pair does
	// not match a stored account.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// NewUser holds the fields collected on the signup form.
type NewUser struct {
	Email    string
	Password string
	FullName string
	Metadata models.SignupMetadata
}

// Create hashes the password and inserts a new user. Returns ErrEmailTaken
// when the unique email index rejects the insert.
func (s *Store) Create(ctx context.Context, nu NewUser) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(nu.Email),
		PasswordHash: string(hash),
		FullName:     normalize.Name(nu.FullName),
		Metadata:     nu.Metadata,
		AuthMethod:   "password",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.Metadata.Plan = models.NormalizePlan(u.Metadata.Plan)

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// CreateOAuth inserts a user authenticated by an external provider. The
// account has no password hash and is email-verified from the start.
// Returns the existing user when the email already has an account.
func (s *Store) CreateOAuth(ctx context.Context, email, fullName, provider string) (*models.User, error) {
	now := time.Now().UTC()
	u := models.User{
		ID:            primitive.NewObjectID(),
		Email:         normalize.Email(email),
		FullName:      normalize.Name(fullName),
		EmailVerified: true,
		AuthMethod:    provider,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return s.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate checks an email/password pair. It returns
// ErrInvalidCredentials for a missing account or a wrong password so the
// two cases are indistinguishable to the caller.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// MarkEmailVerified flips the verified flag after a confirmation link is
// consumed. Idempotent.
func (s *Store) MarkEmailVerified(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"email_verified": true,
		"updated_at":     time.Now().UTC(),
	}})
	return err
}

// Count returns the total number of user accounts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
