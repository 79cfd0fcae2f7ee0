// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Routes is intentionally open to signed-out visitors: logging out twice
// is harmless and a stale bookmark should not produce an error page.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogout)
	return r
}
