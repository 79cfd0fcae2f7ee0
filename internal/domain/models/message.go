// internal/domain/models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an inbound note: either a contact-form submission from a
// visitor (UserID nil) or a message from a signed-in client. Bodies are
// sanitized before storage.
type Message struct {
	ID      primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID  *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name    string              `bson:"name" json:"name"`
	Email   string              `bson:"email" json:"email"`
	Subject string              `bson:"subject" json:"subject"`
	Body    string              `bson:"body" json:"body"`
	Read    bool                `bson:"read" json:"read"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
