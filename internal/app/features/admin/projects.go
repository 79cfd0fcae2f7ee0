// internal/app/features/admin/projects.go
package admin

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	"github.com/kestrelworks/clienthub/internal/app/system/gates"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type projectListData struct {
	viewdata.BaseVM
	Projects []models.Project
	Names    map[primitive.ObjectID]string
	Statuses []string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/projects                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects, err := h.Projects.ListAll(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: list projects", err)
		return
	}

	// Map client user IDs to display names for the table. One list read
	// beats a lookup per row.
	names := map[primitive.ObjectID]string{}
	clients, err := h.Clients.List(ctx)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: list clients for projects", err)
		return
	}
	for _, c := range clients {
		names[c.UserID] = c.FullName
	}

	data := projectListData{
		BaseVM:   viewdata.NewBaseVM(r, "Projects", "/admin-dashboard"),
		Projects: projects,
		Names:    names,
		Statuses: []string{models.ProjectPlanning, models.ProjectActive, models.ProjectReview, models.ProjectDone},
	}
	templates.Render(w, r, "admin_projects", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/projects  (created from the client detail page)                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleProjectCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse project form", err, "Invalid form data.", "/admin/projects")
		return
	}

	clientUserID, err := primitive.ObjectIDFromHex(r.PostFormValue("client_user_id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "That client does not exist.", "/admin/clients")
		return
	}
	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		uierrors.RenderForbidden(w, r, "A project needs a name.", "/admin/clients")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err = h.Projects.Create(ctx, models.Project{
		ClientUserID: clientUserID,
		Name:         name,
		Summary:      strings.TrimSpace(r.PostFormValue("summary")),
		Status:       r.PostFormValue("status"),
	})
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: create project", err)
		return
	}

	http.Redirect(w, r, "/admin/clients/"+clientUserID.Hex(), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/projects/{id}/status                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "/admin/projects")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "admin: parse status form", err, "Invalid form data.", "/admin/projects")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Projects.UpdateStatus(ctx, id, r.PostFormValue("status")); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: update project status", err)
		return
	}

	http.Redirect(w, r, backTo(r, "/admin/projects"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/projects/{id}/delete  (admin only)                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleProjectDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only administrators can delete projects.", "/admin/projects")
	if !res.OK {
		return
	}
	id, ok := h.pathID(w, r, "/admin/projects")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Projects.Delete(ctx, id); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: delete project", err)
		return
	}

	http.Redirect(w, r, backTo(r, "/admin/projects"), http.StatusSeeOther)
}

// backTo returns the form's declared return path, falling back when the
// form did not carry one. Only local paths are honored.
func backTo(r *http.Request, fallback string) string {
	back := r.PostFormValue("back")
	if back == "" || !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		return fallback
	}
	return back
}
