// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role, name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// (RoleUnknown, "", NilObjectID, false); ok=true always means a valid,
// authenticated user with a valid ObjectID. Unrecognized role strings come
// back as RoleUnknown, never as a staff role.
func UserCtx(r *http.Request) (role models.Role, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.RoleUnknown, "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return models.RoleUnknown, "", primitive.NilObjectID, false
	}
	return models.ParseRole(user.Role), user.Name, userID, true
}

// IsStaff reports whether the current request's user is admin or team.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role.IsStaff()
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsClient reports whether the current request's user has the client role.
// An unknown role is not a client for permission purposes, even though
// routing fails open to the client dashboard.
func IsClient(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleClient
}
