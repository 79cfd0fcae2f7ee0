// internal/app/features/admin/messages.go
package admin

import (
	"context"
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/gates"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

type messageListData struct {
	viewdata.BaseVM
	Messages   []models.Message
	UnreadOnly bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/messages[?unread=1]                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeMessages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	unreadOnly := query.Get(r, "unread") == "1"

	var (
		msgs []models.Message
		err  error
	)
	if unreadOnly {
		msgs, err = h.Messages.ListUnread(ctx)
	} else {
		msgs, err = h.Messages.ListAll(ctx)
	}
	if err != nil {
		h.ErrLog.LogDBError(w, r, "admin: list messages", err)
		return
	}

	data := messageListData{
		BaseVM:     viewdata.NewBaseVM(r, "Messages", "/admin-dashboard"),
		Messages:   msgs,
		UnreadOnly: unreadOnly,
	}
	templates.Render(w, r, "admin_messages", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/messages/{id}/read                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "/admin/messages")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Messages.MarkRead(ctx, id); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: mark message read", err)
		return
	}

	http.Redirect(w, r, backTo(r, "/admin/messages"), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/messages/{id}/delete  (admin only)                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMessageDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only administrators can delete messages.", "/admin/messages")
	if !res.OK {
		return
	}
	id, ok := h.pathID(w, r, "/admin/messages")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Messages.Delete(ctx, id); err != nil {
		h.ErrLog.LogDBError(w, r, "admin: delete message", err)
		return
	}

	http.Redirect(w, r, backTo(r, "/admin/messages"), http.StatusSeeOther)
}
