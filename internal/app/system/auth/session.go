// internal/app/system/auth/session.go
package auth

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.uber.org/zap"
)

// Session cookie value keys.
const (
	isAuthKey      = "is_authenticated"
	userIDKey      = "user_id"
	userEmailKey   = "user_email"
	metaNameKey    = "meta_full_name"
	metaCompanyKey = "meta_company_name"
	metaPhoneKey   = "meta_phone"
	metaPlanKey    = "meta_plan"
)

// Session is the authenticated-identity handle for the current browser
// context: the user id, email, and the signup metadata bag. It is observed,
// never persisted, by this package; the cookie is the source of truth.
type Session struct {
	UserID   string
	Email    string
	Metadata models.SignupMetadata
}

// SessionManager wraps the cookie session store and is the single gateway
// for reading, creating, and destroying sessions. Every other component
// obtains the current session through it.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	log    *zap.Logger
	fetch  UserFetcher
	events *EventBus
}

// NewSessionManager builds a SessionManager around a cookie store.
//
// In production (secure=true) cookies are Secure + SameSite=None so they
// survive cross-site redirects from the email-confirmation link. In local
// dev over http://localhost, secure=false with SameSite=Lax.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		name:   name,
		log:    logger,
		events: NewEventBus(),
	}, nil
}

// Store exposes the underlying cookie store (logout needs its options to
// build a matching deletion cookie).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// Events returns the auth event bus for this manager.
func (sm *SessionManager) Events() *EventBus { return sm.events }

// SetUserFetcher installs the fetcher LoadSessionUser uses to load fresh
// user data on each request, so role changes and disabled accounts take
// effect immediately.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetch = f }

// GetSession returns the raw cookie session, creating a fresh one when the
// cookie is absent or fails to decode. The error is informational; the
// returned session is always usable.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// CurrentSession reads the present session. It never fails from the
// caller's perspective: decode errors and missing cookies both yield nil,
// so callers treat "no session" and "session fetch failed" identically and
// route to the unauthenticated path.
func (sm *SessionManager) CurrentSession(r *http.Request) *Session {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			sm.log.Debug("session cookie failed to decode; treating as signed out", zap.Error(err))
		} else {
			sm.log.Warn("session read error; treating as signed out", zap.Error(err))
		}
		return nil
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return nil
	}
	return &Session{
		UserID: getString(sess, userIDKey),
		Email:  getString(sess, userEmailKey),
		Metadata: models.SignupMetadata{
			FullName:    getString(sess, metaNameKey),
			CompanyName: getString(sess, metaCompanyKey),
			Phone:       getString(sess, metaPhoneKey),
			Plan:        getString(sess, metaPlanKey),
		},
	}
}

// SignIn writes an authenticated session for the user and publishes
// EventSignedIn. The signup metadata rides along on the cookie so the
// reconciler can seed profile/client rows without an extra read.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *models.User) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		// Decode failure means a stale or tampered cookie; continue with the
		// fresh session GetSession handed back.
		sm.log.Warn("stale session cookie during sign-in, using fresh session",
			zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID.Hex()
	sess.Values[userEmailKey] = u.Email
	sess.Values[metaNameKey] = u.Metadata.FullName
	sess.Values[metaCompanyKey] = u.Metadata.CompanyName
	sess.Values[metaPhoneKey] = u.Metadata.Phone
	sess.Values[metaPlanKey] = u.Metadata.Plan

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	sm.events.Publish(EventSignedIn, &Session{
		UserID:   u.ID.Hex(),
		Email:    u.Email,
		Metadata: u.Metadata,
	})
	return nil
}

// SignOut clears the session. It is idempotent: signing out without a
// session is a no-op apart from the deletion cookie. EventSignedOut is
// published either way so cached per-user state is invalidated before any
// fetch for the next identity on this device.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	current := sm.CurrentSession(r)

	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during sign-out", zap.Error(err))
	}

	// Make the deletion cookie match the original store settings.
	if opts := sm.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1 // delete immediately

	if err := sess.Save(r, w); err != nil {
		sm.log.Error("sign-out: save session", zap.Error(err))
	}

	sm.events.Publish(EventSignedOut, current)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
