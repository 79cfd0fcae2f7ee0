package welcome_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/features/welcome"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/testutil"
	"go.uber.org/zap"
)

func TestNewHandler_DefaultsDelay(t *testing.T) {
	h := welcome.NewHandler(0, zap.NewNop())
	if h.ForwardDelay != welcome.DefaultForwardDelay {
		t.Errorf("ForwardDelay: got %v, want %v", h.ForwardDelay, welcome.DefaultForwardDelay)
	}

	h = welcome.NewHandler(3*time.Second, zap.NewNop())
	if h.ForwardDelay != 3*time.Second {
		t.Errorf("ForwardDelay: got %v, want 3s", h.ForwardDelay)
	}
}

func TestServeWelcome_SignedOutGoesToLogin(t *testing.T) {
	h := welcome.NewHandler(0, zap.NewNop())

	req := httptest.NewRequest("GET", "/welcome", nil)
	rec := httptest.NewRecorder()

	h.ServeWelcome(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if location := rec.Header().Get("Location"); location != dashrouter.PathLogin {
		t.Errorf("Location: got %q, want %q", location, dashrouter.PathLogin)
	}
}

func TestServeWelcome_SignedInRenders(t *testing.T) {
	h := welcome.NewHandler(0, zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/welcome", testutil.ClientUser())
	rec := httptest.NewRecorder()

	// Template rendering may panic when the shared template engine is not
	// booted; the assertion is only that no redirect happens.
	func() {
		defer func() { _ = recover() }()
		h.ServeWelcome(rec, req)
	}()

	if location := rec.Header().Get("Location"); location != "" {
		t.Errorf("unexpected redirect to %q for a signed-in user", location)
	}
}
