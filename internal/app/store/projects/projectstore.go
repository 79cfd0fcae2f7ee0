// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/normalize"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errBadStatus = errors.New(`status must be "planning"|"active"|"review"|"done"`)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// Create inserts a project after validating its status.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}
	if !validStatus(p.Status) {
		return models.Project{}, errBadStatus
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForClient returns the projects belonging to one client user, newest
// first. This is the client-dashboard query.
func (s *Store) ListForClient(ctx context.Context, clientUserID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"client_user_id": clientUserID})
}

// ListAll returns every project, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a project to a new delivery status.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	status = normalize.Status(status)
	if !validStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Update rewrites a project's name, summary, and status.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, summary, status string) error {
	status = normalize.Status(status)
	if !validStatus(status) {
		return errBadStatus
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       normalize.Name(name),
		"summary":    summary,
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a project. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the total number of projects.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

func validStatus(s string) bool {
	switch s {
	case models.ProjectPlanning, models.ProjectActive, models.ProjectReview, models.ProjectDone:
		return true
	}
	return false
}
