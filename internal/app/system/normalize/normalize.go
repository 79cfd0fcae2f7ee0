// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical string-normalization rules used
// before comparing or persisting user-supplied values.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person or company name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims a status string.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Subject trims a message subject and collapses it to a single line.
func Subject(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
