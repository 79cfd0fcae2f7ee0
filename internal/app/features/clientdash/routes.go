// internal/app/features/clientdash/routes.go
package clientdash

import (
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeDashboard)
		pr.Post("/messages", h.HandleMessagePost)
	})

	return r
}
