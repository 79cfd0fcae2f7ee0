// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the login form and the resend endpoint under /login.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Post("/", h.HandleLoginPost)
	r.Post("/resend", h.HandleResendPost)
	return r
}

// SignupRoutes mounts the signup form under /signup.
func SignupRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSignup)
	r.Post("/", h.HandleSignupPost)
	return r
}
