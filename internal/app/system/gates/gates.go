// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, rendering appropriate error
// pages when checks fail.
//
// Route groups with uniform requirements use the SessionManager middleware
// (RequireSignedIn, RequireRole) in routes.go files; gates are for handlers
// that need a different check than their route group, and they hand back
// the user context so the handler does not re-derive it.
package gates

import (
	"net/http"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	"github.com/kestrelworks/clienthub/internal/app/system/authz"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   models.Role
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not authenticated, it renders an unauthorized error and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request, loginURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, loginURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireStaff ensures the user is authenticated and holds a staff role
// (admin or team). If authenticated but not staff, renders forbidden with
// the provided message and fallback URL.
func RequireStaff(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if !role.IsStaff() {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdmin ensures the user is authenticated and has the admin role
// specifically (team is not enough).
func RequireAdmin(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}
	if role != models.RoleAdmin {
		uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}
