// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is everything
// specific to ClientHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: clienthub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for gorilla/csrf token signing

	// Site identity
	SiteName string // Display name used in layouts and emails
	BaseURL  string // e.g., "https://clienthub.example.com" or "http://localhost:3000"

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., hello@clienthub.example.com)
	MailFromName string // From display name

	// Email verification settings
	EmailVerifyExpiry time.Duration // Magic-link expiry

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Admin bootstrap: on startup, the profile matching this email is
	// promoted to the admin role.
	AdminEmail string

	// Rate limiting for credential endpoints
	LoginRateLimit  int           // Allowed POSTs per IP per window
	LoginRateWindow time.Duration // Window for the limit

	// Welcome page auto-forward delay
	WelcomeDelay time.Duration

	// Dashboard routing bound (timeouts.Medium)
	RouteTimeout time.Duration
}
