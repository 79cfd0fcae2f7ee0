package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllow_BurstThenBlocked(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("request over burst should be blocked")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("a") {
		t.Fatal("first request for key a should pass")
	}
	if !l.Allow("b") {
		t.Error("key b should not be affected by key a")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Minute)

	l.Allow("a")
	if l.Allow("a") {
		t.Fatal("second request should be blocked")
	}
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("request after reset should be allowed")
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	l := New(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "5.6.7.8:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		want   string
	}{
		{
			name:  "x-forwarded-for",
			setup: func(r *http.Request) { r.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1") },
			want:  "9.9.9.9",
		},
		{
			name:  "x-real-ip",
			setup: func(r *http.Request) { r.Header.Set("X-Real-IP", "8.8.8.8") },
			want:  "8.8.8.8",
		},
		{
			name:  "remote addr",
			setup: func(r *http.Request) { r.RemoteAddr = "7.7.7.7:443" },
			want:  "7.7.7.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			tt.setup(req)
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
