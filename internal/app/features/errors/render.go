// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}
	if backURL == "" {
		backURL = "/login"
	}

	w.WriteHeader(http.StatusUnauthorized)
	templates.Render(w, r, "error_forbidden", pageData{
		SiteName:   models.DefaultSiteName,
		Title:      "Sign in required",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    "Please sign in to continue.",
		BackURL:    backURL,
	})
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty it falls back to the home page.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}
	if backURL == "" {
		backURL = "/"
	}
	if msg == "" {
		msg = "You don't have permission to view this page."
	}

	w.WriteHeader(http.StatusForbidden)
	templates.Render(w, r, "error_forbidden", pageData{
		SiteName:   models.DefaultSiteName,
		Title:      "Access denied",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	})
}

// RenderRetry shows the terminal account-error card: the user is signed in
// but has no routable account state. The card offers a retry of the same
// URL and a sign-out link; it never redirect-loops.
func RenderRetry(w http.ResponseWriter, r *http.Request, msg string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}
	if msg == "" {
		msg = "We couldn't load your account. Please try again, or sign out and back in."
	}

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_retry", pageData{
		SiteName:   models.DefaultSiteName,
		Title:      "Something went wrong",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    "/logout",
		ShowRetry:  true,
		RetryURL:   r.URL.RequestURI(),
	})
}
