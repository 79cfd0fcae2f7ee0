// internal/domain/models/blogpost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost is a marketing article. Only published posts are visible on the
// public blog; the body is sanitized HTML.
type BlogPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"slug" json:"slug"`
	Title       string             `bson:"title" json:"title"`
	Summary     string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Body        string             `bson:"body" json:"body"`
	Author      string             `bson:"author,omitempty" json:"author,omitempty"`
	Published   bool               `bson:"published" json:"published"`
	PublishedAt *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
