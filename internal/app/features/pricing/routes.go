// internal/app/features/pricing/routes.go
package pricing

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePricing)
	return r
}
