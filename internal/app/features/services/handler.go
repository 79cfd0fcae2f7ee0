// internal/app/features/services/handler.go
package services

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Service is one line of business shown on the services page.
type Service struct {
	Name        string
	Description string
}

type pageData struct {
	viewdata.BaseVM
	Services []Service
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

func (h *Handler) ServeServices(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "services", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Services", "/"),
		Services: []Service{
			{Name: "Bookkeeping", Description: "Monthly close, bank reconciliation, and reporting your accountant will thank you for."},
			{Name: "Payroll", Description: "Full-service payroll runs, tax withholding, and year-end forms."},
			{Name: "Compliance", Description: "Business registrations, license renewals, and statutory filings on schedule."},
			{Name: "Invoicing", Description: "We issue, chase, and reconcile your receivables."},
			{Name: "Advisory", Description: "Quarterly reviews with a senior accountant who knows your numbers."},
		},
	})
}
