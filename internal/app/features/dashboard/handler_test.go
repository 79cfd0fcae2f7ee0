package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kestrelworks/clienthub/internal/app/features/dashboard"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/reconcile"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type noopReconciler struct{}

func (noopReconciler) EnsureProfileAndClient(context.Context, reconcile.Identity) {}

type fixedRoles struct{ role models.Role }

func (f fixedRoles) Resolve(context.Context, primitive.ObjectID) models.Role { return f.role }

type fixedProfiles struct{ p *models.Profile }

func (f fixedProfiles) GetByUserID(context.Context, primitive.ObjectID) (*models.Profile, error) {
	return f.p, nil
}

type fixedClients struct{ c *models.Client }

func (f fixedClients) GetByUserID(context.Context, primitive.ObjectID) (*models.Client, error) {
	return f.c, nil
}

func newTestHandler(t *testing.T, role models.Role) (*dashboard.Handler, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	router := dashrouter.New(noopReconciler{}, fixedRoles{role}, fixedProfiles{&models.Profile{}}, fixedClients{&models.Client{}}, logger)
	return dashboard.NewHandler(sessionMgr, router, logger), sessionMgr
}

func signedInRequest(t *testing.T, sessionMgr *auth.SessionManager, target string) *http.Request {
	t.Helper()

	user := &models.User{ID: primitive.NewObjectID(), Email: "member@example.com"}
	setup := httptest.NewRequest("GET", "/setup", nil)
	setupRec := httptest.NewRecorder()
	if err := sessionMgr.SignIn(setupRec, setup, user); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	req := httptest.NewRequest("GET", target, nil)
	for _, c := range setupRec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestServeDashboard_SignedOutGoesToLogin(t *testing.T) {
	handler, _ := newTestHandler(t, models.RoleClient)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if location := rec.Header().Get("Location"); location != dashrouter.PathLogin {
		t.Errorf("Location: got %q, want %q", location, dashrouter.PathLogin)
	}
}

func TestServeDashboard_ClientRole(t *testing.T) {
	handler, sessionMgr := newTestHandler(t, models.RoleClient)

	req := signedInRequest(t, sessionMgr, "/dashboard")
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	if location := rec.Header().Get("Location"); location != dashrouter.PathClient {
		t.Errorf("Location: got %q, want %q", location, dashrouter.PathClient)
	}
}

func TestServeDashboard_StaffRoles(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleTeam} {
		handler, sessionMgr := newTestHandler(t, role)

		req := signedInRequest(t, sessionMgr, "/dashboard")
		rec := httptest.NewRecorder()

		handler.ServeDashboard(rec, req)

		if location := rec.Header().Get("Location"); location != dashrouter.PathAdmin {
			t.Errorf("role %q: Location got %q, want %q", role, location, dashrouter.PathAdmin)
		}
	}
}

func TestServeDashboard_UnknownRoleFailsOpenToClient(t *testing.T) {
	handler, sessionMgr := newTestHandler(t, models.RoleUnknown)

	req := signedInRequest(t, sessionMgr, "/dashboard")
	rec := httptest.NewRecorder()

	handler.ServeDashboard(rec, req)

	// The role never resolved but the user exists, so routing falls back
	// to the client dashboard instead of an error page.
	if location := rec.Header().Get("Location"); location != dashrouter.PathClient {
		t.Errorf("Location: got %q, want %q", location, dashrouter.PathClient)
	}
}
