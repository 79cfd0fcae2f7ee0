// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"net/http"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/ratelimit"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

// Create inserts a LoginRecord. If CreatedAt is zero, it's set to time.Now().UTC().
func (s *Store) Create(ctx context.Context, rec models.LoginRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}

// CreateFrom builds a LoginRecord from the HTTP request and inserts it,
// extracting the client IP the same way the rate limiter does.
func (s *Store) CreateFrom(ctx context.Context, r *http.Request, userID primitive.ObjectID, email, provider string) error {
	rec := models.LoginRecord{
		UserID:    userID.Hex(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
		IP:        ratelimit.ClientIP(r),
		Provider:  provider,
	}
	_, err := s.c.InsertOne(ctx, rec)
	return err
}
