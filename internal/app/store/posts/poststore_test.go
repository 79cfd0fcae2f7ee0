package poststore

import (
	"errors"
	"strings"
	"testing"

	"github.com/kestrelworks/clienthub/internal/app/system/indexes"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/kestrelworks/clienthub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Launching Our New Portal!  ", "launching-our-new-portal"},
		{"Q3 2026: What's Next?", "q3-2026-what-s-next"},
		{"---", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(testutil.TestContext(t), db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return New(db)
}

func TestCreateDerivesSlugAndSanitizes(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	p, err := s.Create(ctx, models.BlogPost{
		Title:     "Our First Post",
		Body:      `<p>Welcome!</p><script>alert("x")</script>`,
		Author:    "Jordan",
		Published: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "our-first-post" {
		t.Errorf("slug: got %q, want %q", p.Slug, "our-first-post")
	}
	if strings.Contains(p.Body, "<script") {
		t.Errorf("script tag survived sanitization: %q", p.Body)
	}
	if !strings.Contains(p.Body, "<p>Welcome!</p>") {
		t.Errorf("basic formatting should survive: %q", p.Body)
	}
	if p.PublishedAt == nil {
		t.Error("published_at not stamped on publish at creation")
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	if _, err := s.Create(ctx, models.BlogPost{Title: "Same Title", Body: "one"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(ctx, models.BlogPost{Title: "Same Title", Body: "two"}); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("second create: got %v, want ErrSlugTaken", err)
	}
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	if _, err := s.Create(ctx, models.BlogPost{Title: "Draft Post", Body: "wip"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.GetBySlug(ctx, "draft-post"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("draft lookup: got %v, want mongo.ErrNoDocuments", err)
	}
	if _, err := s.GetBySlug(ctx, "no-such-post"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("missing lookup: got %v, want mongo.ErrNoDocuments", err)
	}
}

func TestSetPublishedStampsPublishedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	p, err := s.Create(ctx, models.BlogPost{Title: "Soon", Body: "soon"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.PublishedAt != nil {
		t.Fatal("draft should have no published_at")
	}

	if err := s.SetPublished(ctx, p.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, err := s.GetBySlug(ctx, p.Slug)
	if err != nil {
		t.Fatalf("get after publish: %v", err)
	}
	if got.PublishedAt == nil {
		t.Error("published_at not stamped on publish")
	}

	if err := s.SetPublished(ctx, p.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, err := s.GetBySlug(ctx, p.Slug); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("unpublished post still visible by slug: %v", err)
	}
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	if _, err := s.Create(ctx, models.BlogPost{Title: "Live One", Body: "a", Published: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, models.BlogPost{Title: "Hidden Draft", Body: "b"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	pub, err := s.ListPublished(ctx)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(pub) != 1 || pub[0].Title != "Live One" {
		t.Errorf("published list: got %d posts", len(pub))
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("full list: got %d posts, want 2", len(all))
	}
}

func TestUpdateKeepsSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := testutil.TestContext(t)

	p, err := s.Create(ctx, models.BlogPost{Title: "Original Title", Body: "b", Published: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = s.Update(ctx, p.ID, PostUpdate{
		Title:  "Renamed Title",
		Body:   "<em>new</em>",
		Author: "Editor",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// The slug is fixed at creation so the published URL still works.
	got, err := s.GetBySlug(ctx, "original-title")
	if err != nil {
		t.Fatalf("get by original slug: %v", err)
	}
	if got.Title != "Renamed Title" {
		t.Errorf("title: got %q", got.Title)
	}
}
