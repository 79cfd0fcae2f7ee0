// internal/domain/models/loginrecord.go
package models

import "time"

// LoginRecord is an audit entry written on every successful sign-in.
type LoginRecord struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	IP        string    `bson:"ip,omitempty" json:"ip,omitempty"`
	Provider  string    `bson:"provider,omitempty" json:"provider,omitempty"` // password | google
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
