package profilestore

import (
	"errors"
	"testing"

	"github.com/kestrelworks/clienthub/internal/app/system/indexes"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/kestrelworks/clienthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return New(db)
}

func TestGetByUserIDMissingIsNotAnError(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	p, err := s.GetByUserID(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("got error %v, want nil for missing profile", err)
	}
	if p != nil {
		t.Errorf("got %+v, want nil", p)
	}
}

func TestInsertFirstWinsSecondIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	created, err := s.Insert(ctx, models.Profile{
		UserID:   userID,
		Email:    "Jordan@Example.com",
		FullName: "jordan blake",
		Role:     string(models.RoleClient),
	})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !created {
		t.Error("first insert should report created")
	}

	// The unique user_id index rejects the second insert; the store treats
	// that as someone else having created the row.
	created, err = s.Insert(ctx, models.Profile{
		UserID: userID,
		Email:  "jordan@example.com",
		Role:   string(models.RoleAdmin),
	})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Error("second insert should not report created")
	}

	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Role != string(models.RoleClient) {
		t.Errorf("role: got %q, want the first insert's %q", p.Role, models.RoleClient)
	}
	if p.Email != "jordan@example.com" {
		t.Errorf("email not normalized: got %q", p.Email)
	}
}

func TestSetRole(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	if _, err := s.Insert(ctx, models.Profile{UserID: userID, Email: "t@example.com", Role: string(models.RoleClient)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.SetRole(ctx, userID, models.RoleTeam); err != nil {
		t.Fatalf("set role: %v", err)
	}
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Role != string(models.RoleTeam) {
		t.Errorf("role: got %q, want %q", p.Role, models.RoleTeam)
	}

	if err := s.SetRole(ctx, primitive.NewObjectID(), models.RoleAdmin); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("set role on missing profile: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestPromoteToAdminByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	// No profile yet: promotion is a silent no-op, retried on next boot.
	promoted, err := s.PromoteToAdminByEmail(ctx, "boss@example.com")
	if err != nil {
		t.Fatalf("promote before profile exists: %v", err)
	}
	if promoted {
		t.Error("promotion reported without a profile to promote")
	}

	if _, err := s.Insert(ctx, models.Profile{UserID: userID, Email: "boss@example.com", Role: string(models.RoleClient)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	promoted, err = s.PromoteToAdminByEmail(ctx, "Boss@Example.COM")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !promoted {
		t.Error("expected promotion to be reported")
	}
	p, err := s.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Role != string(models.RoleAdmin) {
		t.Errorf("role after promotion: got %q, want %q", p.Role, models.RoleAdmin)
	}
}
