// internal/app/features/admindash/handler.go

// Package admindash renders the staff dashboard: headline counts plus the
// newest clients and unread messages, with links into the admin screens.
package admindash

import (
	"context"
	"net/http"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	clientstore "github.com/kestrelworks/clienthub/internal/app/store/clients"
	messagestore "github.com/kestrelworks/clienthub/internal/app/store/messages"
	metricsstore "github.com/kestrelworks/clienthub/internal/app/store/metrics"
	"github.com/kestrelworks/clienthub/internal/app/system/authz"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// recentLimit caps the "latest" lists on the dashboard; full lists live
// under /admin.
const recentLimit = 5

type Handler struct {
	DB       *mongo.Database
	Clients  *clientstore.Store
	Messages *messagestore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(
	db *mongo.Database,
	clients *clientstore.Store,
	messages *messagestore.Store,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:       db,
		Clients:  clients,
		Messages: messages,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type pageData struct {
	viewdata.BaseVM
	Counts         metricsstore.Counts
	RecentClients  []models.Client
	UnreadMessages []models.Message
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin-dashboard                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, dashrouter.PathLogin)
		return
	}
	// Clients who land here get their own dashboard instead of an error.
	if !role.IsStaff() {
		http.Redirect(w, r, dashrouter.PathClient, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB)

	clients, err := h.Clients.List(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin dashboard: list clients", err)
		return
	}
	if len(clients) > recentLimit {
		clients = clients[:recentLimit]
	}

	unread, err := h.Messages.ListUnread(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin dashboard: list unread messages", err)
		return
	}
	if len(unread) > recentLimit {
		unread = unread[:recentLimit]
	}

	data := pageData{
		BaseVM:         viewdata.NewBaseVM(r, "Team dashboard", "/"),
		Counts:         counts,
		RecentClients:  clients,
		UnreadMessages: unread,
	}
	templates.Render(w, r, "admin_dashboard", data)
}
