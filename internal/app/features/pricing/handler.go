// internal/app/features/pricing/handler.go
package pricing

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Tier is one plan on the pricing page. Plan matches the persisted plan
// enum so the signup link can preselect it.
type Tier struct {
	Plan     string
	Name     string
	Price    string
	Tagline  string
	Features []string
	Featured bool
}

type pageData struct {
	viewdata.BaseVM
	Tiers []Tier
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

func (h *Handler) ServePricing(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "pricing", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Pricing", "/"),
		Tiers: []Tier{
			{
				Plan:     models.PlanStarter,
				Name:     "Starter",
				Price:    "$149/mo",
				Tagline:  "For solo founders",
				Features: []string{"Monthly bookkeeping", "Quarterly reports", "Email support"},
			},
			{
				Plan:     models.PlanBasic,
				Name:     "Basic",
				Price:    "$299/mo",
				Tagline:  "For small teams",
				Features: []string{"Everything in Starter", "Payroll for up to 5", "Annual filings"},
			},
			{
				Plan:     models.PlanStandard,
				Name:     "Standard",
				Price:    "$599/mo",
				Tagline:  "Our most popular plan",
				Features: []string{"Everything in Basic", "Payroll for up to 25", "Compliance calendar", "Dedicated contact"},
				Featured: true,
			},
			{
				Plan:     models.PlanPremium,
				Name:     "Premium",
				Price:    "$1,199/mo",
				Tagline:  "For growing companies",
				Features: []string{"Everything in Standard", "Unlimited payroll", "Quarterly advisory sessions", "Same-day response"},
			},
		},
	})
}
