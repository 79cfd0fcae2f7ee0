// internal/app/features/testimonials/routes.go
package testimonials

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeTestimonials)
	return r
}
