// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles GET /logout. SignOut clears the cookie and publishes
// the signed-out event so caches drop the user.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	h.SessionMgr.SignOut(w, r)

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	// Non-HTMX: standard redirect home.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
