// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses, in delivery order.
const (
	ProjectPlanning = "planning"
	ProjectActive   = "active"
	ProjectReview   = "review"
	ProjectDone     = "done"
)

// Project is a piece of work the agency runs for a client. Clients see
// their own projects on the client dashboard; staff manage all of them.
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientUserID primitive.ObjectID `bson:"client_user_id" json:"client_user_id"`
	Name         string             `bson:"name" json:"name"`
	Summary      string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Status       string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
