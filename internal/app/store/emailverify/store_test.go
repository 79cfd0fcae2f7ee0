package emailverify

import (
	"errors"
	"testing"
	"time"

	"github.com/kestrelworks/clienthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndConsumeOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db, DefaultExpiry)
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	userID := primitive.NewObjectID()
	token, err := s.Create(ctx, userID, "confirm@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	v, err := s.Consume(ctx, token)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if v.UserID != userID || v.Email != "confirm@example.com" {
		t.Errorf("consumed wrong record: %+v", v)
	}

	// Consume deletes the record, so the link only works once.
	if _, err := s.Consume(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("second consume: got %v, want ErrNotFound", err)
	}
}

func TestCreateReplacesEarlierToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db, DefaultExpiry)

	userID := primitive.NewObjectID()
	first, err := s.Create(ctx, userID, "resend@example.com")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := s.Create(ctx, userID, "resend@example.com")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if _, err := s.Consume(ctx, first); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale token should be invalid after resend: %v", err)
	}
	if _, err := s.Consume(ctx, second); err != nil {
		t.Errorf("newest token should work: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db, time.Millisecond)

	token, err := s.Create(ctx, primitive.NewObjectID(), "late@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := s.Consume(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired consume: got %v, want ErrNotFound", err)
	}

	// The sweep removes the expired row even before the TTL monitor runs.
	n, err := s.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("cleanup removed %d rows, want 1", n)
	}
}

func TestConsumeUnknownToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db, DefaultExpiry)

	if _, err := s.Consume(ctx, "never-issued"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
