// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/htmlsanitize"
	"github.com/kestrelworks/clienthub/internal/app/system/normalize"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlugTaken is returned when creating a post whose slug already exists.
var ErrSlugTaken = errors.New("a post with this slug already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blog_posts")}
}

// Create sanitizes the body and inserts a post. An empty slug is derived
// from the title.
func (s *Store) Create(ctx context.Context, p models.BlogPost) (models.BlogPost, error) {
	p.ID = primitive.NewObjectID()
	p.Title = normalize.Name(p.Title)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.Body = htmlsanitize.Sanitize(p.Body)
	now := time.Now().UTC()
	if p.Published && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.BlogPost{}, ErrSlugTaken
		}
		return models.BlogPost{}, err
	}
	return p, nil
}

// GetBySlug loads a published post by slug. Drafts are invisible here;
// returns mongo.ErrNoDocuments for both missing and unpublished posts.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := s.c.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID loads a post regardless of publication state. Admin use only.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var p models.BlogPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublished returns published posts, most recently published first.
func (s *Store) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	return s.list(ctx, bson.M{"published": true}, bson.D{{Key: "published_at", Value: -1}})
}

// ListAll returns every post including drafts, newest first. Admin use only.
func (s *Store) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	return s.list(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}})
}

func (s *Store) list(ctx context.Context, filter bson.M, sort bson.D) ([]models.BlogPost, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BlogPost
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites a post's editable fields. The body is re-sanitized.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd PostUpdate) error {
	set := bson.M{
		"title":      normalize.Name(upd.Title),
		"summary":    upd.Summary,
		"body":       htmlsanitize.Sanitize(upd.Body),
		"author":     normalize.Name(upd.Author),
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PostUpdate holds the fields editable after creation. Slug is fixed at
// creation so published URLs never break.
type PostUpdate struct {
	Title   string
	Summary string
	Body    string
	Author  string
}

// SetPublished publishes or unpublishes a post, stamping published_at on
// the first publish.
func (s *Store) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	set := bson.M{
		"published":  published,
		"updated_at": time.Now().UTC(),
	}
	if published {
		set["published_at"] = time.Now().UTC()
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a post. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of published posts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"published": true})
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lowercase, alphanumeric runs
// joined by single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
