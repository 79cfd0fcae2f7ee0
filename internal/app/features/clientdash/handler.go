// internal/app/features/clientdash/handler.go

// Package clientdash renders the client dashboard: the signed-in client's
// account summary, their projects, and their message thread with the team.
package clientdash

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	clientstore "github.com/kestrelworks/clienthub/internal/app/store/clients"
	messagestore "github.com/kestrelworks/clienthub/internal/app/store/messages"
	projectstore "github.com/kestrelworks/clienthub/internal/app/store/projects"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/gates"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Clients  *clientstore.Store
	Projects *projectstore.Store
	Messages *messagestore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(
	clients *clientstore.Store,
	projects *projectstore.Store,
	messages *messagestore.Store,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Clients:  clients,
		Projects: projects,
		Messages: messages,
		ErrLog:   errLog,
		Log:      logger,
	}
}

type pageData struct {
	viewdata.BaseVM
	Client   *models.Client
	Projects []models.Project
	Messages []models.Message
	Sent     bool
	Errors   map[string]string
	Subject  string
	Body     string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /client-dashboard                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r, dashrouter.PathLogin)
	if !res.OK {
		return
	}
	// Staff who wander here get their own dashboard instead of an error.
	if res.Role.IsStaff() {
		http.Redirect(w, r, dashrouter.PathAdmin, http.StatusSeeOther)
		return
	}

	h.render(w, r, pageData{})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /client-dashboard/messages                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMessagePost(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r, dashrouter.PathLogin)
	if !res.OK {
		return
	}
	if res.Role.IsStaff() {
		http.Redirect(w, r, dashrouter.PathAdmin, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "client dashboard: parse message form", err, "Invalid form data.", "/client-dashboard")
		return
	}
	subject := strings.TrimSpace(r.PostFormValue("subject"))
	body := strings.TrimSpace(r.PostFormValue("body"))

	formErrs := map[string]string{}
	if subject == "" {
		formErrs["subject"] = "Please add a subject."
	}
	if body == "" {
		formErrs["body"] = "Please write a message."
	}
	if len(formErrs) > 0 {
		h.render(w, r, pageData{Errors: formErrs, Subject: subject, Body: body})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	uid := res.UserID
	msg := models.Message{
		UserID:  &uid,
		Name:    res.Name,
		Subject: subject,
		Body:    body,
	}
	if client, err := h.Clients.GetByUserID(ctx, uid); err == nil && client != nil {
		msg.Email = client.Email
	}
	if _, err := h.Messages.Create(ctx, msg); err != nil {
		h.ErrLog.LogDBError(w, r, "client dashboard: create message", err)
		return
	}

	h.render(w, r, pageData{Sent: true})
}

// render loads the client's rows and renders the dashboard with whatever
// form state the caller supplies.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	res := gates.RequireAuth(w, r, dashrouter.PathLogin)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	client, err := h.Clients.GetByUserID(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "client dashboard: load client", err)
		return
	}
	projects, err := h.Projects.ListForClient(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "client dashboard: load projects", err)
		return
	}
	messages, err := h.Messages.ListForUser(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogDBError(w, r, "client dashboard: load messages", err)
		return
	}

	data.BaseVM = viewdata.NewBaseVM(r, "Your dashboard", "/")
	data.Client = client
	data.Projects = projects
	data.Messages = messages

	templates.Render(w, r, "client_dashboard", data)
}
