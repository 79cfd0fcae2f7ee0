// internal/app/features/clientdash/views/views.go
package clientdash

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "clientdash",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
