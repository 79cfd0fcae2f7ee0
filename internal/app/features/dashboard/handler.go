// internal/app/features/dashboard/handler.go

// Package dashboard is the single post-login entry point. It never renders
// a page of its own: it reads the session, runs the routing pipeline, and
// redirects to whichever dashboard the account should land on.
package dashboard

import (
	"net/http"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"go.uber.org/zap"
)

type Handler struct {
	SessionMgr *auth.SessionManager
	Router     *dashrouter.Router
	Log        *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, router *dashrouter.Router, logger *zap.Logger) *Handler {
	return &Handler{
		SessionMgr: sessionMgr,
		Router:     router,
		Log:        logger,
	}
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.SessionMgr.CurrentSession(r)

	d := h.Router.Route(r.Context(), sess)
	if d.Outcome == dashrouter.OutcomeError {
		uierrors.RenderRetry(w, r, "")
		return
	}
	http.Redirect(w, r, d.Path, http.StatusSeeOther)
}
