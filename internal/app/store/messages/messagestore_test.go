package messagestore

import (
	"errors"
	"strings"
	"testing"

	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/kestrelworks/clienthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateStripsMarkup(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := testutil.TestContext(t)

	m, err := s.Create(ctx, models.Message{
		Name:    "Visitor",
		Email:   "Visitor@Example.com",
		Subject: `Help <script>alert(1)</script> needed`,
		Body:    `<b>Please</b> call me back`,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if strings.Contains(m.Subject, "<") || strings.Contains(m.Body, "<") {
		t.Errorf("markup survived: subject %q body %q", m.Subject, m.Body)
	}
	if !strings.Contains(m.Body, "Please") {
		t.Errorf("text content lost: %q", m.Body)
	}
	if m.Email != "visitor@example.com" {
		t.Errorf("email not normalized: %q", m.Email)
	}
	if m.Read {
		t.Error("new message should start unread")
	}
	if m.UserID != nil {
		t.Error("anonymous contact submission should have no user linkage")
	}
}

func TestListForUserOnlyReturnsOwnMessages(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := testutil.TestContext(t)

	mine := primitive.NewObjectID()
	other := primitive.NewObjectID()
	if _, err := s.Create(ctx, models.Message{UserID: &mine, Name: "Me", Subject: "a", Body: "b"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, models.Message{UserID: &other, Name: "Them", Subject: "c", Body: "d"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, models.Message{Name: "Anon", Subject: "e", Body: "f"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := s.ListForUser(ctx, mine)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Me" {
		t.Errorf("got %d messages, want only the caller's own", len(list))
	}
}

func TestMarkReadAndUnreadCounts(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := testutil.TestContext(t)

	m1, err := s.Create(ctx, models.Message{Name: "A", Subject: "s1", Body: "b1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, models.Message{Name: "B", Subject: "s2", Body: "b2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.MarkRead(ctx, m1.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	unread, err := s.ListUnread(ctx)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 1 || unread[0].Name != "B" {
		t.Errorf("unread list: got %d entries", len(unread))
	}
	n, err := s.CountUnread(ctx)
	if err != nil {
		t.Fatalf("count unread: %v", err)
	}
	if n != 1 {
		t.Errorf("unread count: got %d, want 1", n)
	}

	if err := s.MarkRead(ctx, primitive.NewObjectID()); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("mark read on missing message: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestDelete(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := testutil.TestContext(t)

	m, err := s.Create(ctx, models.Message{Name: "Gone", Subject: "s", Body: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := s.Delete(ctx, m.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	n, err = s.Delete(ctx, m.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if n != 0 {
		t.Errorf("second delete removed %d, want 0", n)
	}
}
