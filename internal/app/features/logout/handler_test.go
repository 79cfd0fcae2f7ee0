package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kestrelworks/clienthub/internal/app/features/logout"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*logout.Handler, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return logout.NewHandler(sessionMgr, logger), sessionMgr
}

func TestServeLogout_RedirectsToHome(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/" {
		t.Errorf("Location: got %q, want %q", location, "/")
	}
}

func TestServeLogout_ClearsSessionCookie(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeLogout(rec, req)

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie MaxAge: got %d, want -1 (delete)", c.MaxAge)
			}
			break
		}
	}
	if !found {
		t.Error("expected session cookie to be set for deletion")
	}
}

func TestServeLogout_HTMX_ReturnsHXRedirect(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeLogout(rec, req)

	if hxRedirect := rec.Header().Get("HX-Redirect"); hxRedirect != "/" {
		t.Errorf("HX-Redirect: got %q, want %q", hxRedirect, "/")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for HTMX, got %d", http.StatusOK, rec.Code)
	}
}

func TestServeLogout_WithExistingSession(t *testing.T) {
	handler, sessionMgr := newTestHandler(t)

	// Sign in to obtain a real session cookie.
	user := &models.User{ID: primitive.NewObjectID(), Email: "out@example.com"}
	req1 := httptest.NewRequest("GET", "/setup", nil)
	rec1 := httptest.NewRecorder()
	if err := sessionMgr.SignIn(rec1, req1, user); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	req2 := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range rec1.Result().Cookies() {
		req2.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()

	handler.ServeLogout(rec2, req2)

	if rec2.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec2.Code)
	}
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge != -1 {
			t.Errorf("cookie MaxAge after logout: got %d, want -1", c.MaxAge)
		}
	}
}

func TestServeLogout_PublishesSignedOutEvent(t *testing.T) {
	handler, sessionMgr := newTestHandler(t)

	events := make(chan auth.Event, 1)
	sessionMgr.Events().Subscribe(func(e auth.Event, _ *auth.Session) {
		select {
		case events <- e:
		default:
		}
	})

	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, req)

	select {
	case e := <-events:
		if e != auth.EventSignedOut {
			t.Errorf("event: got %v, want EventSignedOut", e)
		}
	default:
		t.Error("expected a signed-out event even without a session")
	}
}
