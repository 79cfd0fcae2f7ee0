// internal/domain/models/sitesettings.go
package models

// DefaultSiteName is used anywhere a display name is needed before (or
// without) site settings being loaded.
const DefaultSiteName = "ClientHub"
