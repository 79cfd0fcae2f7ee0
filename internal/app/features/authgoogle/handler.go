// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	loginstore "github.com/kestrelworks/clienthub/internal/app/store/logins"
	"github.com/kestrelworks/clienthub/internal/app/store/oauthstate"
	userstore "github.com/kestrelworks/clienthub/internal/app/store/users"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// stateTTL bounds how long a pending OAuth round trip stays valid.
const stateTTL = 10 * time.Minute

// Handler handles Google OAuth authentication. Unlike password signups,
// Google accounts arrive email-verified, so a first-time Google sign-in
// provisions the account on the spot.
type Handler struct {
	Users      *userstore.Store
	Logins     *loginstore.Store
	StateStore *oauthstate.Store
	SessionMgr *auth.SessionManager
	Router     *dashrouter.Router
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g., "https://clienthub.example.com/auth/google/callback"
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(
	users *userstore.Store,
	logins *loginstore.Store,
	stateStore *oauthstate.Store,
	sessionMgr *auth.SessionManager,
	router *dashrouter.Router,
	errLog *uierrors.ErrorLogger,
	clientID, clientSecret, baseURL string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:        users,
		Logins:       logins,
		StateStore:   stateStore,
		SessionMgr:   sessionMgr,
		Router:       router,
		ErrLog:       errLog,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/auth/google/callback",
		Log:          logger,
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google                                                             |
| Initiates the Google OAuth flow by redirecting to Google's consent screen.   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.StateStore.Save(ctx, state, "", time.Now().UTC().Add(stateTTL)); err != nil {
		h.Log.Error("failed to save OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /auth/google/callback                                                    |
| Exchanges the code for tokens, fetches user info, provisions the account    |
| if needed, and hands off to the dashboard router.                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("missing OAuth state parameter")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctxShort, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	_, valid, err := h.StateStore.Validate(ctxShort, state)
	if err != nil {
		h.Log.Error("failed to validate OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}
	if !valid {
		h.Log.Warn("invalid or expired OAuth state")
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("missing OAuth code parameter")
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}
	if !googleUser.EmailVerified {
		h.Log.Warn("Google account email not verified", zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/login?error=unverified_google_email", http.StatusSeeOther)
		return
	}

	user, created, err := h.findOrCreateUser(ctxShort, googleUser)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "google callback: find or create user", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user); err != nil {
		h.ErrLog.LogServerError(w, r, "google callback: establish session", err, "We couldn't sign you in. Please try again.")
		return
	}
	if err := h.Logins.CreateFrom(ctxShort, r, user.ID, user.Email, "google"); err != nil {
		h.Log.Warn("login record write failed", zap.Error(err))
	}

	d := h.Router.Route(ctx, &auth.Session{
		UserID:   user.ID.Hex(),
		Email:    user.Email,
		Metadata: user.Metadata,
	})
	switch {
	case d.Outcome == dashrouter.OutcomeError:
		uierrors.RenderRetry(w, r, "")
	case created && d.Outcome == dashrouter.OutcomeClient:
		http.Redirect(w, r, "/welcome", http.StatusSeeOther)
	default:
		http.Redirect(w, r, d.Path, http.StatusSeeOther)
	}
}

func (h *Handler) findOrCreateUser(ctx context.Context, gu *googleUserInfo) (user *models.User, created bool, err error) {
	user, err = h.Users.GetByEmail(ctx, gu.Email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	user, err = h.Users.CreateOAuth(ctx, gu.Email, gu.Name, "google")
	if err != nil {
		return nil, false, err
	}
	h.Log.Info("account provisioned from Google sign-in", zap.String("email", gu.Email))
	return user, true, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Google userinfo                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// generateState produces a cryptographically random OAuth state token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
