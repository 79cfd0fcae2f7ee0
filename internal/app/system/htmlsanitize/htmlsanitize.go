// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize wraps the bluemonday policies used for user-supplied
// content. Blog post bodies keep basic formatting; contact and client
// messages are stripped to plain text.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize cleans HTML destined for rich display (blog post bodies),
// keeping common formatting tags and safe links while removing scripts and
// event handlers.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// SanitizeHTML sanitizes and marks the result safe for template injection.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(ugc.Sanitize(s)) // #nosec G203 -- sanitized above
}

// PlainText strips all markup. Used for message bodies and subjects where
// no HTML is ever intended.
func PlainText(s string) string {
	return strict.Sanitize(s)
}
