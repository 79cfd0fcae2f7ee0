// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SignupMetadata is the free-form bag collected on the signup form. It rides
// along on the session and seeds the profile and client rows the first time
// the reconciler sees a new user.
type SignupMetadata struct {
	FullName    string `bson:"full_name,omitempty" json:"full_name,omitempty"`
	CompanyName string `bson:"company_name,omitempty" json:"company_name,omitempty"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	Plan        string `bson:"plan,omitempty" json:"plan,omitempty"`
}

// User is the authentication identity: credentials plus the signup metadata
// used to seed profile/client rows. Access control lives on Profile, not here.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash,omitempty" json:"-"`
	FullName      string             `bson:"full_name" json:"full_name"`
	Metadata      SignupMetadata     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	EmailVerified bool               `bson:"email_verified" json:"email_verified"`
	AuthMethod    string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // password | google
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
