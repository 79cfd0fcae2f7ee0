// internal/app/features/testimonials/handler.go
package testimonials

import (
	"net/http"

	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Testimonial struct {
	Quote   string
	Author  string
	Company string
}

type pageData struct {
	viewdata.BaseVM
	Testimonials []Testimonial
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

func (h *Handler) ServeTestimonials(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "testimonials", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Testimonials", "/"),
		Testimonials: []Testimonial{
			{
				Quote:   "They took our books from eighteen months behind to current in six weeks. I haven't thought about payroll since.",
				Author:  "Maya Okafor",
				Company: "Brightline Cafe Group",
			},
			{
				Quote:   "The dashboard alone is worth it. I can see exactly where every filing stands without sending a single email.",
				Author:  "Dan Kowalski",
				Company: "Kowalski Electric",
			},
			{
				Quote:   "We switched from a big national firm and got faster answers from people who actually know our account.",
				Author:  "Priya Raman",
				Company: "Cedar & Vine Imports",
			},
		},
	})
}
