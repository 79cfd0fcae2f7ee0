// internal/app/features/admin/clients.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	clientstore "github.com/kestrelworks/clienthub/internal/app/store/clients"
	"github.com/kestrelworks/clienthub/internal/app/system/gates"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
)

type clientListData struct {
	viewdata.BaseVM
	Clients []models.Client
}

type clientDetailData struct {
	viewdata.BaseVM
	Client         *models.Client
	Profile        *models.Profile
	Projects       []models.Project
	Saved          bool
	IsAdmin        bool
	Statuses       []string
	Plans          []string
	ClientStatuses []string
	Roles          []string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/clients                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeClients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clients, err := h.Clients.List(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: list clients", err)
		return
	}

	data := clientListData{
		BaseVM:  viewdata.NewBaseVM(r, "Clients", "/admin-dashboard"),
		Clients: clients,
	}
	templates.Render(w, r, "admin_clients", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/clients/{id}                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeClientDetail(w http.ResponseWriter, r *http.Request) {
	h.renderClientDetail(w, r, false)
}

func (h *Handler) renderClientDetail(w http.ResponseWriter, r *http.Request, saved bool) {
	res := gates.RequireAuth(w, r, "/login")
	if !res.OK {
		return
	}

	id, ok := h.pathID(w, r, "/admin/clients")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	client, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderForbidden(w, r, "That client record does not exist.", "/admin/clients")
			return
		}
		h.ErrLog.LogDBError(w, r, "admin: load client", err)
		return
	}

	profile, err := h.Profiles.GetByUserID(ctx, client.UserID)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: load client profile", err)
		return
	}
	projects, err := h.Projects.ListForClient(ctx, client.UserID)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: load client projects", err)
		return
	}

	data := clientDetailData{
		BaseVM:         viewdata.NewBaseVM(r, client.FullName, "/admin/clients"),
		Client:         client,
		Profile:        profile,
		Projects:       projects,
		Saved:          saved,
		IsAdmin:        res.Role == models.RoleAdmin,
		Statuses:       []string{models.ProjectPlanning, models.ProjectActive, models.ProjectReview, models.ProjectDone},
		Plans:          []string{models.PlanStarter, models.PlanBasic, models.PlanStandard, models.PlanPremium},
		ClientStatuses: []string{"active", "paused", "closed"},
		Roles:          []string{models.RoleClient.String(), models.RoleTeam.String(), models.RoleAdmin.String()},
	}
	templates.Render(w, r, "admin_client_detail", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/clients/{id}                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleClientUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "/admin/clients")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse client form", err, "Invalid form data.", "/admin/clients")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	upd := clientstore.ClientUpdate{
		FullName:    strings.TrimSpace(r.PostFormValue("full_name")),
		CompanyName: strings.TrimSpace(r.PostFormValue("company_name")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Phone:       strings.TrimSpace(r.PostFormValue("phone")),
		Plan:        r.PostFormValue("plan"),
		Status:      r.PostFormValue("status"),
	}
	if err := h.Clients.Update(ctx, id, upd); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: update client", err)
		return
	}

	h.renderClientDetail(w, r, true)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/clients/{id}/role                                                |
| Role changes are admin-only; team members can view but not promote.         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleClientRole(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only administrators can change roles.", "/admin/clients")
	if !res.OK {
		return
	}
	id, ok := h.pathID(w, r, "/admin/clients")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse role form", err, "Invalid form data.", "/admin/clients")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	client, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: load client for role change", err)
		return
	}

	role := models.ParseRole(r.PostFormValue("role"))
	if role == models.RoleUnknown {
		uierrors.RenderForbidden(w, r, "That is not a valid role.", "/admin/clients/"+id.Hex())
		return
	}
	if err := h.Profiles.SetRole(ctx, client.UserID, role); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: set role", err)
		return
	}

	h.renderClientDetail(w, r, true)
}
