// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	"github.com/kestrelworks/clienthub/internal/app/store/emailverify"
	loginstore "github.com/kestrelworks/clienthub/internal/app/store/logins"
	userstore "github.com/kestrelworks/clienthub/internal/app/store/users"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/mailer"
	"github.com/kestrelworks/clienthub/internal/app/system/normalize"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// MinPasswordLength is the floor for new account passwords.
const MinPasswordLength = 8

type Handler struct {
	Users       *userstore.Store
	Logins      *loginstore.Store
	EmailVerify *emailverify.Store
	SessionMgr  *auth.SessionManager
	Router      *dashrouter.Router
	Mailer      *mailer.Mailer
	ErrLog      *uierrors.ErrorLogger
	Log         *zap.Logger

	BaseURL       string // Base URL for confirmation links (e.g., "https://clienthub.example.com")
	SiteName      string
	GoogleEnabled bool // True if Google OAuth is configured
}

func NewHandler(
	users *userstore.Store,
	logins *loginstore.Store,
	verify *emailverify.Store,
	sessionMgr *auth.SessionManager,
	router *dashrouter.Router,
	mail *mailer.Mailer,
	errLog *uierrors.ErrorLogger,
	baseURL, siteName string,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:         users,
		Logins:        logins,
		EmailVerify:   verify,
		SessionMgr:    sessionMgr,
		Router:        router,
		Mailer:        mail,
		ErrLog:        errLog,
		BaseURL:       baseURL,
		SiteName:      siteName,
		GoogleEnabled: googleEnabled,
		Log:           logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ShowResend    bool
	GoogleEnabled bool
}

type signupFormData struct {
	viewdata.BaseVM
	Error         string
	FullName      string
	Email         string
	CompanyName   string
	Phone         string
	Plan          string
	GoogleEnabled bool
}

type checkEmailData struct {
	viewdata.BaseVM
	Email     string
	ExpiresIn string
	Resent    bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	// An already signed-in user goes straight to their dashboard.
	if sess := h.SessionMgr.CurrentSession(r); sess != nil {
		d := h.Router.Route(r.Context(), sess)
		if d.Outcome != dashrouter.OutcomeError {
			http.Redirect(w, r, d.Path, http.StatusSeeOther)
			return
		}
	}

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Log in", "/"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderLoginError(w, r, "Please enter your email and password.", email, false)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, userstore.ErrInvalidCredentials) {
			h.renderLoginError(w, r, "That email and password don't match our records.", email, false)
			return
		}
		h.ErrLog.LogDBError(w, r, "login: authenticate", err)
		return
	}

	if !user.EmailVerified {
		h.renderLoginError(w, r, "Your email address hasn't been confirmed yet. Check your inbox for the confirmation link.", email, true)
		return
	}

	h.signInAndRoute(w, r, user, "password")
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, msg, email string, showResend bool) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Log in", "/"),
		Error:         msg,
		Email:         email,
		ShowResend:    showResend,
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /signup                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "signup", signupFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Create your account", "/"),
		Plan:          models.NormalizePlan(r.URL.Query().Get("plan")),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /signup                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "signup: parse form failed", err, "Invalid form data.", "/signup")
		return
	}

	data := signupFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Create your account", "/"),
		FullName:      strings.TrimSpace(r.FormValue("full_name")),
		Email:         normalize.Email(r.FormValue("email")),
		CompanyName:   strings.TrimSpace(r.FormValue("company_name")),
		Phone:         strings.TrimSpace(r.FormValue("phone")),
		Plan:          models.NormalizePlan(r.FormValue("plan")),
		GoogleEnabled: h.GoogleEnabled,
	}
	password := r.FormValue("password")

	switch {
	case data.FullName == "":
		data.Error = "Please enter your name."
	case data.Email == "" || !strings.Contains(data.Email, "@"):
		data.Error = "Please enter a valid email address."
	case len(password) < MinPasswordLength:
		data.Error = fmt.Sprintf("Passwords must be at least %d characters.", MinPasswordLength)
	}
	if data.Error != "" {
		templates.Render(w, r, "signup", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, userstore.NewUser{
		Email:    data.Email,
		Password: password,
		FullName: data.FullName,
		Metadata: models.SignupMetadata{
			FullName:    data.FullName,
			CompanyName: data.CompanyName,
			Phone:       data.Phone,
			Plan:        data.Plan,
		},
	})
	if err != nil {
		if errors.Is(err, userstore.ErrEmailTaken) {
			data.Error = "An account with this email already exists. Try logging in instead."
			templates.Render(w, r, "signup", data)
			return
		}
		h.ErrLog.LogDBError(w, r, "signup: create user", err)
		return
	}

	if err := h.sendConfirmation(ctx, user); err != nil {
		h.ErrLog.LogServerError(w, r, "signup: send confirmation email", err,
			"Your account was created but we couldn't send the confirmation email. Try resending it from the login page.")
		return
	}

	h.Log.Info("account created, confirmation sent", zap.String("email", user.Email))
	templates.Render(w, r, "check_email", checkEmailData{
		BaseVM:    viewdata.NewBaseVM(r, "Check your email", "/"),
		Email:     user.Email,
		ExpiresIn: formatExpiryDuration(h.EmailVerify.Expiry()),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login/resend – re-send the confirmation link                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleResendPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "resend: parse form failed", err, "Invalid form data.", "/login")
		return
	}
	email := normalize.Email(r.FormValue("email"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Always render the same page whether or not the account exists, so
	// this endpoint can't be used to probe for registered emails.
	if user, err := h.Users.GetByEmail(ctx, email); err == nil && !user.EmailVerified {
		if err := h.sendConfirmation(ctx, user); err != nil {
			h.Log.Error("resend confirmation failed", zap.String("email", email), zap.Error(err))
		}
	}

	templates.Render(w, r, "check_email", checkEmailData{
		BaseVM:    viewdata.NewBaseVM(r, "Check your email", "/"),
		Email:     email,
		ExpiresIn: formatExpiryDuration(h.EmailVerify.Expiry()),
		Resent:    true,
	})
}

func (h *Handler) sendConfirmation(ctx context.Context, user *models.User) error {
	token, err := h.EmailVerify.Create(ctx, user.ID, user.Email)
	if err != nil {
		return err
	}

	email := mailer.BuildConfirmEmail(mailer.ConfirmEmailData{
		SiteName:   h.SiteName,
		FullName:   user.FullName,
		ConfirmURL: fmt.Sprintf("%s/auth/callback?token=%s", strings.TrimRight(h.BaseURL, "/"), token),
		ExpiresIn:  formatExpiryDuration(h.EmailVerify.Expiry()),
	})
	email.To = user.Email
	return h.Mailer.Send(email)
}

// signInAndRoute establishes the cookie session, records the login, and
// sends the user wherever the dashboard router says they belong.
func (h *Handler) signInAndRoute(w http.ResponseWriter, r *http.Request, user *models.User, provider string) {
	if err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.LogServerError(w, r, "login: establish session", err, "We couldn't sign you in. Please try again.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if err := h.Logins.CreateFrom(ctx, r, user.ID, user.Email, provider); err != nil {
		// Audit failure never blocks a login.
		h.Log.Warn("login record write failed", zap.Error(err))
	}

	d := h.Router.Route(r.Context(), &auth.Session{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Metadata: user.Metadata,
	})
	if d.Outcome == dashrouter.OutcomeError {
		uierrors.RenderRetry(w, r, "")
		return
	}
	http.Redirect(w, r, d.Path, http.StatusSeeOther)
}

// formatExpiryDuration formats a time.Duration as a human-readable string
// e.g., "10 minutes", "1 hour", "24 hours"
func formatExpiryDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
