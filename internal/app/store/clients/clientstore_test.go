package clientstore

import (
	"testing"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/indexes"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/kestrelworks/clienthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return New(db)
}

func TestInsertDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	created, err := s.Insert(ctx, models.Client{
		UserID:   userID,
		Email:    "New@Client.com",
		FullName: "new client",
		Plan:     "free",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !created {
		t.Error("expected created")
	}

	c, err := s.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Plan != models.PlanBasic {
		t.Errorf("unknown plan: got %q, want %q", c.Plan, models.PlanBasic)
	}
	if c.Status != "active" {
		t.Errorf("status: got %q, want active", c.Status)
	}
	if c.SignupDate.IsZero() {
		t.Error("signup date not stamped")
	}
	if c.Email != "new@client.com" {
		t.Errorf("email not normalized: got %q", c.Email)
	}
}

func TestInsertDuplicateUserIgnored(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	if _, err := s.Insert(ctx, models.Client{UserID: userID, Email: "a@b.com", Plan: models.PlanPremium}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	created, err := s.Insert(ctx, models.Client{UserID: userID, Email: "a@b.com", Plan: models.PlanStarter})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Error("second insert for the same user should not report created")
	}

	c, err := s.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Plan != models.PlanPremium {
		t.Errorf("plan: got %q, want the first insert's %q", c.Plan, models.PlanPremium)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)
	userID := primitive.NewObjectID()

	if _, err := s.Insert(ctx, models.Client{UserID: userID, Email: "old@b.com", FullName: "Old Name"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	c, err := s.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	err = s.Update(ctx, c.ID, ClientUpdate{
		FullName:    "New Name",
		CompanyName: "New Co",
		Email:       "new@b.com",
		Phone:       "555-0199",
		Plan:        models.PlanStandard,
		Status:      "paused",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.FullName != "New Name" || got.CompanyName != "New Co" || got.Plan != models.PlanStandard || got.Status != "paused" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.UserID != userID {
		t.Error("user linkage changed on update")
	}
}

func TestListNewestSignupFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	now := time.Now().UTC()
	if _, err := s.Insert(ctx, models.Client{
		UserID:     primitive.NewObjectID(),
		FullName:   "Older Client",
		Email:      "older@x.com",
		SignupDate: now.Add(-24 * time.Hour),
	}); err != nil {
		t.Fatalf("insert older: %v", err)
	}
	if _, err := s.Insert(ctx, models.Client{
		UserID:     primitive.NewObjectID(),
		FullName:   "Newer Client",
		Email:      "newer@x.com",
		SignupDate: now,
	}); err != nil {
		t.Fatalf("insert newer: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d clients, want 2", len(list))
	}
	if list[0].FullName != "Newer Client" {
		t.Errorf("newest signup should sort first, got %q", list[0].FullName)
	}
}
