// internal/app/store/messages/messagestore.go
package messagestore

import (
	"context"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/htmlsanitize"
	"github.com/kestrelworks/clienthub/internal/app/system/normalize"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("messages")}
}

// Create sanitizes and inserts a message. Subject and body are stripped to
// plain text before storage; a nil UserID marks an anonymous contact-form
// submission.
func (s *Store) Create(ctx context.Context, m models.Message) (models.Message, error) {
	m.ID = primitive.NewObjectID()
	m.Name = normalize.Name(m.Name)
	m.Email = normalize.Email(m.Email)
	m.Subject = htmlsanitize.PlainText(normalize.Subject(m.Subject))
	m.Body = htmlsanitize.PlainText(m.Body)
	m.Read = false
	m.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, err
	}
	return m, nil
}

// ListForUser returns the messages a signed-in client has sent, newest
// first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Message, error) {
	return s.list(ctx, bson.M{"user_id": userID})
}

// ListAll returns every message, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Message, error) {
	return s.list(ctx, bson.M{})
}

// ListUnread returns unread messages, newest first.
func (s *Store) ListUnread(ctx context.Context) ([]models.Message, error) {
	return s.list(ctx, bson.M{"read": false})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Message, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags a message as handled.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a message. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountUnread returns the number of unread messages.
func (s *Store) CountUnread(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"read": false})
}

// Count returns the total number of messages.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
