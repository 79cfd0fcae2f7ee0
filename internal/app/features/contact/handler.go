// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/kestrelworks/clienthub/internal/app/features/errors"
	messagestore "github.com/kestrelworks/clienthub/internal/app/store/messages"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/authz"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Messages *messagestore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(messages *messagestore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Messages: messages, ErrLog: errLog, Log: logger}
}

type formData struct {
	viewdata.BaseVM
	Error   string
	Sent    bool
	Name    string
	Email   string
	Subject string
	Body    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contact                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	data := formData{BaseVM: viewdata.NewBaseVM(r, "Contact us", "/")}

	// Signed-in users get their details prefilled.
	if u, ok := auth.CurrentUser(r); ok && u != nil {
		data.Name = u.Name
		data.Email = u.Email
	}

	templates.Render(w, r, "contact", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /contact                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleContactPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "contact: parse form failed", err, "Invalid form data.", "/contact")
		return
	}

	data := formData{
		BaseVM:  viewdata.NewBaseVM(r, "Contact us", "/"),
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Body:    strings.TrimSpace(r.FormValue("message")),
	}

	switch {
	case data.Name == "":
		data.Error = "Please tell us your name."
	case data.Email == "" || !strings.Contains(data.Email, "@"):
		data.Error = "Please enter a valid email address."
	case data.Body == "":
		data.Error = "Please include a message."
	}
	if data.Error != "" {
		templates.Render(w, r, "contact", data)
		return
	}

	msg := models.Message{
		Name:    data.Name,
		Email:   data.Email,
		Subject: data.Subject,
		Body:    data.Body,
	}
	// Messages from signed-in users are linked to their account so they
	// show up on the client dashboard.
	if _, _, userID, ok := authz.UserCtx(r); ok {
		msg.UserID = &userID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Messages.Create(ctx, msg); err != nil {
		h.ErrLog.LogDBError(w, r, "contact: store message", err)
		return
	}

	h.Log.Info("contact message received", zap.String("email", msg.Email))
	templates.Render(w, r, "contact", formData{
		BaseVM: viewdata.NewBaseVM(r, "Contact us", "/"),
		Sent:   true,
	})
}
