// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a verified, active account.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Email:         email,
		FullName:      fullName,
		EmailVerified: true,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateProfile inserts an access-control profile for a user.
func (f *Fixtures) CreateProfile(ctx context.Context, userID primitive.ObjectID, email string, role models.Role) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Profile{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		Role:      role.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateClient inserts a client record for a user.
func (f *Fixtures) CreateClient(ctx context.Context, userID primitive.ObjectID, fullName, email, plan string) models.Client {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Client{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		FullName:   fullName,
		Email:      email,
		Plan:       models.NormalizePlan(plan),
		Status:     "active",
		SignupDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("clients").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test client: %v", err)
	}
	return c
}

// CreateProject inserts a project for a client.
func (f *Fixtures) CreateProject(ctx context.Context, clientUserID primitive.ObjectID, name, status string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:           primitive.NewObjectID(),
		ClientUserID: clientUserID,
		Name:         name,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateMessage inserts a message, optionally tied to a user.
func (f *Fixtures) CreateMessage(ctx context.Context, userID *primitive.ObjectID, name, subject, body string) models.Message {
	f.t.Helper()

	m := models.Message{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("messages").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return m
}

// CreatePost inserts a blog post.
func (f *Fixtures) CreatePost(ctx context.Context, slug, title string, published bool) models.BlogPost {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.BlogPost{
		ID:        primitive.NewObjectID(),
		Slug:      slug,
		Title:     title,
		Body:      "<p>body</p>",
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if published {
		p.PublishedAt = &now
	}
	if _, err := f.db.Collection("blog_posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}
