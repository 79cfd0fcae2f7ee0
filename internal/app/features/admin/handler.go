// internal/app/features/admin/handler.go

// Package admin holds the staff-only management screens: clients, projects,
// messages, and blog posts. List and edit actions are open to all staff;
// destructive actions and role changes require the admin role.
package admin

import (
	"net/http"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	clientstore "github.com/kestrelworks/clienthub/internal/app/store/clients"
	messagestore "github.com/kestrelworks/clienthub/internal/app/store/messages"
	poststore "github.com/kestrelworks/clienthub/internal/app/store/posts"
	profilestore "github.com/kestrelworks/clienthub/internal/app/store/profiles"
	projectstore "github.com/kestrelworks/clienthub/internal/app/store/projects"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Clients  *clientstore.Store
	Profiles *profilestore.Store
	Projects *projectstore.Store
	Messages *messagestore.Store
	Posts    *poststore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(
	clients *clientstore.Store,
	profiles *profilestore.Store,
	projects *projectstore.Store,
	messages *messagestore.Store,
	posts *poststore.Store,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Clients:  clients,
		Profiles: profiles,
		Projects: projects,
		Messages: messages,
		Posts:    posts,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// pathID extracts and parses the {id} URL parameter. A false return means
// a bad-request page has already been written.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, backURL string) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		uierrors.RenderForbidden(w, r, "That record does not exist.", backURL)
		return primitive.NilObjectID, false
	}
	return id, true
}
