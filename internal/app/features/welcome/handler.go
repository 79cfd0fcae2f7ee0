// internal/app/features/welcome/handler.go

// Package welcome shows a short onboarding card to newly confirmed clients
// before forwarding them to their dashboard.
package welcome

import (
	"net/http"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/system/authz"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// DefaultForwardDelay is how long the page waits before forwarding to the
// dashboard via meta refresh.
const DefaultForwardDelay = 8 * time.Second

type Handler struct {
	Log          *zap.Logger
	ForwardDelay time.Duration
}

func NewHandler(forwardDelay time.Duration, logger *zap.Logger) *Handler {
	if forwardDelay <= 0 {
		forwardDelay = DefaultForwardDelay
	}
	return &Handler{Log: logger, ForwardDelay: forwardDelay}
}

type pageData struct {
	viewdata.BaseVM
	ForwardSeconds int
	ForwardPath    string
}

// ServeWelcome handles GET /welcome.
func (h *Handler) ServeWelcome(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, dashrouter.PathLogin, http.StatusSeeOther)
		return
	}

	data := pageData{
		BaseVM:         viewdata.NewBaseVM(r, "Welcome aboard", "/"),
		ForwardSeconds: int(h.ForwardDelay / time.Second),
		ForwardPath:    dashrouter.DestinationForRole(role).Path,
	}
	templates.Render(w, r, "welcome", data)
}
