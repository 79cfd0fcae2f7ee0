// internal/app/features/admin/routes.go
package admin

import (
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the staff management screens. All routes require a staff
// role; destructive actions additionally check for admin in the handler.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleAdmin.String(), models.RoleTeam.String()))

		pr.Route("/clients", func(cr chi.Router) {
			cr.Get("/", h.ServeClients)
			cr.Get("/{id}", h.ServeClientDetail)
			cr.Post("/{id}", h.HandleClientUpdate)
			cr.Post("/{id}/role", h.HandleClientRole)
		})

		pr.Route("/projects", func(prj chi.Router) {
			prj.Get("/", h.ServeProjects)
			prj.Post("/", h.HandleProjectCreate)
			prj.Post("/{id}/status", h.HandleProjectStatus)
			prj.Post("/{id}/delete", h.HandleProjectDelete)
		})

		pr.Route("/messages", func(mr chi.Router) {
			mr.Get("/", h.ServeMessages)
			mr.Post("/{id}/read", h.HandleMessageRead)
			mr.Post("/{id}/delete", h.HandleMessageDelete)
		})

		pr.Route("/posts", func(br chi.Router) {
			br.Get("/", h.ServePosts)
			br.Get("/new", h.ServePostNew)
			br.Post("/", h.HandlePostCreate)
			br.Get("/{id}/edit", h.ServePostEdit)
			br.Post("/{id}", h.HandlePostUpdate)
			br.Post("/{id}/publish", h.HandlePostPublish)
			br.Post("/{id}/delete", h.HandlePostDelete)
		})
	})

	return r
}
