// internal/app/store/clients/clientstore.go

// Package clientstore manages the business-facing customer records. Like
// profiles, client rows are one-per-user under a unique index, and Insert
// treats a duplicate-key rejection as someone else having won the race.
package clientstore

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clients")}
}

// GetByUserID loads the client record for a user. A missing row returns
// (nil, nil); only transport failures return an error.
func (s *Store) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Client, error) {
	var c models.Client
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert creates a client row. Reports (false, nil) when the unique
// user_id index rejects the insert because the row already exists.
func (s *Store) Insert(ctx context.Context, c models.Client) (created bool, err error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.Email = normalize.Email(c.Email)
	c.FullName = normalize.Name(c.FullName)
	c.CompanyName = normalize.Name(c.CompanyName)
	c.Plan = models.NormalizePlan(c.Plan)
	if c.Status == "" {
		c.Status = "active"
	}
	now := time.Now().UTC()
	if c.SignupDate.IsZero() {
		c.SignupDate = now
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Update rewrites the editable fields of a client record.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd ClientUpdate) error {
	set := bson.M{
		"full_name":    normalize.Name(upd.FullName),
		"company_name": normalize.Name(upd.CompanyName),
		"email":        normalize.Email(upd.Email),
		"phone":        upd.Phone,
		"plan":         models.NormalizePlan(upd.Plan),
		"status":       normalize.Status(upd.Status),
		"updated_at":   time.Now().UTC(),
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

// ClientUpdate holds the fields staff can edit on a client record.
type ClientUpdate struct {
	FullName    string
	CompanyName string
	Email       string
	Phone       string
	Plan        string
	Status      string
}

// GetByID loads a client record by its own ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var c models.Client
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients, newest signup first.
func (s *Store) List(ctx context.Context) ([]models.Client, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "signup_date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Client
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of client records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
