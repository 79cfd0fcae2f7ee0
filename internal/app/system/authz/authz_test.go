package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, name, id, ok := UserCtx(req)
	if ok {
		t.Fatal("expected ok=false without a user in context")
	}
	if role != models.RoleUnknown || name != "" || !id.IsZero() {
		t.Errorf("expected zero values, got role=%q name=%q id=%v", role, name, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-oid", Role: "admin"})

	if _, _, _, ok := UserCtx(req); ok {
		t.Fatal("expected ok=false for malformed user id")
	}
}

func TestUserCtx_Roles(t *testing.T) {
	tests := []struct {
		stored string
		want   models.Role
		staff  bool
	}{
		{"admin", models.RoleAdmin, true},
		{"Team", models.RoleTeam, true},
		{"client", models.RoleClient, false},
		{"", models.RoleUnknown, false},
		{"superuser", models.RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req = auth.WithTestUser(req, &auth.SessionUser{
				ID:   primitive.NewObjectID().Hex(),
				Role: tt.stored,
			})

			role, _, _, ok := UserCtx(req)
			if !ok {
				t.Fatal("expected ok=true")
			}
			if role != tt.want {
				t.Errorf("role: got %q, want %q", role, tt.want)
			}
			if IsStaff(req) != tt.staff {
				t.Errorf("IsStaff: got %v, want %v", IsStaff(req), tt.staff)
			}
		})
	}
}
