// internal/app/features/pricing/views/views.go
package pricing

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "pricing",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
