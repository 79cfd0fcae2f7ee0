// internal/domain/models/client.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persisted plan tiers. The signup form never offers values outside this
// set; NormalizePlan coerces anything unrecognized to PlanBasic.
const (
	PlanStarter  = "starter"
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// Client is the business-facing customer record for a client-role user.
// One row per user_id (unique index), created by the reconciler when
// missing. A user may hold a Profile without a Client row only transiently,
// between profile creation and client creation.
type Client struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Email       string             `bson:"email" json:"email"`
	CompanyName string             `bson:"company_name" json:"company_name"`
	Phone       string             `bson:"phone" json:"phone"`
	Plan        string             `bson:"plan" json:"plan"`
	SignupDate  time.Time          `bson:"signup_date" json:"signup_date"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NormalizePlan maps a submitted plan value onto the persisted enum.
// Empty and unknown values (including the legacy "free" tier, which was
// never part of the persisted enum) become PlanBasic.
func NormalizePlan(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PlanStarter:
		return PlanStarter
	case PlanStandard:
		return PlanStandard
	case PlanPremium:
		return PlanPremium
	default:
		return PlanBasic
	}
}
