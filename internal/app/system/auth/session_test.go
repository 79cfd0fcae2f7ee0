package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testSessionKey, "clienthub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "ada@example.com",
		Metadata: models.SignupMetadata{
			FullName:    "Ada Lovelace",
			CompanyName: "Analytical Engines Ltd",
			Phone:       "555-0100",
			Plan:        "premium",
		},
	}
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "name", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestCurrentSession_NoCookie(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	if sess := sm.CurrentSession(req); sess != nil {
		t.Fatalf("expected nil session without cookie, got %+v", sess)
	}
}

func TestCurrentSession_GarbageCookie(t *testing.T) {
	sm := newTestManager(t)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "clienthub-test", Value: "not-a-session"})

	// Decode failure must look exactly like "no session".
	if sess := sm.CurrentSession(req); sess != nil {
		t.Fatalf("expected nil session for undecodable cookie, got %+v", sess)
	}
}

func TestSignIn_RoundTrip(t *testing.T) {
	sm := newTestManager(t)
	u := testUser()

	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()

	if err := sm.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookies")
	}

	next := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}

	sess := sm.CurrentSession(next)
	if sess == nil {
		t.Fatal("expected session after sign-in")
	}
	if sess.UserID != u.ID.Hex() {
		t.Errorf("UserID: got %q, want %q", sess.UserID, u.ID.Hex())
	}
	if sess.Email != "ada@example.com" {
		t.Errorf("Email: got %q, want %q", sess.Email, "ada@example.com")
	}
	if sess.Metadata.FullName != "Ada Lovelace" {
		t.Errorf("Metadata.FullName: got %q, want %q", sess.Metadata.FullName, "Ada Lovelace")
	}
	if sess.Metadata.Plan != "premium" {
		t.Errorf("Metadata.Plan: got %q, want %q", sess.Metadata.Plan, "premium")
	}
}

func TestSignIn_PublishesEvent(t *testing.T) {
	sm := newTestManager(t)

	var got Event
	var gotSess *Session
	unsub := sm.Events().Subscribe(func(e Event, s *Session) {
		got = e
		gotSess = s
	})
	defer unsub()

	req := httptest.NewRequest("POST", "/login", nil)
	rec := httptest.NewRecorder()
	u := testUser()

	if err := sm.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if got != EventSignedIn {
		t.Errorf("event: got %q, want %q", got, EventSignedIn)
	}
	if gotSess == nil || gotSess.UserID != u.ID.Hex() {
		t.Errorf("event session: got %+v", gotSess)
	}
}

func TestSignOut_Idempotent(t *testing.T) {
	sm := newTestManager(t)

	events := 0
	unsub := sm.Events().Subscribe(func(e Event, _ *Session) {
		if e == EventSignedOut {
			events++
		}
	})
	defer unsub()

	// Signing out with no session at all must not error or panic.
	req := httptest.NewRequest("GET", "/logout", nil)
	rec := httptest.NewRecorder()
	sm.SignOut(rec, req)
	sm.SignOut(httptest.NewRecorder(), req)

	if events != 2 {
		t.Errorf("expected 2 signed-out events, got %d", events)
	}
}
