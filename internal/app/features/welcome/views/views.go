// internal/app/features/welcome/views/views.go
package welcome

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "welcome",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
