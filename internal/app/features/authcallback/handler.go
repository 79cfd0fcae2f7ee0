// internal/app/features/authcallback/handler.go

// Package authcallback finishes the email-confirmation round trip: it
// consumes the one-time token from the magic link, marks the email
// verified, establishes the session, and hands off to the dashboard
// router. New clients detour through the welcome page instead of landing
// cold on their dashboard.
package authcallback

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	"github.com/kestrelworks/clienthub/internal/app/store/emailverify"
	loginstore "github.com/kestrelworks/clienthub/internal/app/store/logins"
	userstore "github.com/kestrelworks/clienthub/internal/app/store/users"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

type Handler struct {
	Users       *userstore.Store
	Logins      *loginstore.Store
	EmailVerify *emailverify.Store
	SessionMgr  *auth.SessionManager
	Router      *dashrouter.Router
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(
	users *userstore.Store,
	logins *loginstore.Store,
	verify *emailverify.Store,
	sessionMgr *auth.SessionManager,
	router *dashrouter.Router,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:       users,
		Logins:      logins,
		EmailVerify: verify,
		SessionMgr:  sessionMgr,
		Router:      router,
		ErrLog:      errLog,
		Log:         logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/callback?token=…                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	token := query.Get(r, "token")
	if token == "" {
		uierrors.RenderForbidden(w, r, "That confirmation link is incomplete. Copy the full link from your email.", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.EmailVerify.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, emailverify.ErrNotFound) {
			uierrors.RenderForbidden(w, r, "That confirmation link has expired or was already used. Request a new one from the login page.", "/login")
			return
		}
		h.ErrLog.LogDBError(w, r, "callback: consume token", err)
		return
	}

	if err := h.Users.MarkEmailVerified(ctx, v.UserID); err != nil {
		h.ErrLog.LogDBError(w, r, "callback: mark email verified", err)
		return
	}

	user, err := h.Users.GetByID(ctx, v.UserID)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "callback: load user", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.LogServerError(w, r, "callback: establish session", err, "We couldn't sign you in. Please try logging in.")
		return
	}
	if err := h.Logins.CreateFrom(ctx, r, user.ID, user.Email, "email"); err != nil {
		h.Log.Warn("login record write failed", zap.Error(err))
	}

	d := h.Router.Route(r.Context(), &auth.Session{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Metadata: user.Metadata,
	})
	switch d.Outcome {
	case dashrouter.OutcomeError:
		uierrors.RenderRetry(w, r, "")
	case dashrouter.OutcomeClient:
		// First confirmed login for a client lands on the welcome page,
		// which forwards to the dashboard after a short pause.
		http.Redirect(w, r, "/welcome", http.StatusSeeOther)
	default:
		http.Redirect(w, r, d.Path, http.StatusSeeOther)
	}
}
