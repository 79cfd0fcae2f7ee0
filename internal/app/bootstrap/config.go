// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ClientHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CLIENTHUB_MONGO_URI, CLIENTHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "clienthub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "clienthub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "csrf_key", Default: "dev-only-32-byte-csrf-key-change", Desc: "32-byte CSRF signing key"},

	{Name: "site_name", Default: "ClientHub", Desc: "Site display name"},
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for email links"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "hello@clienthub.local", Desc: "From email address"},
	{Name: "mail_from_name", Default: "ClientHub", Desc: "From display name"},

	// Email verification settings
	{Name: "email_verify_expiry", Default: "24h", Desc: "Email confirmation link expiry (e.g., 10m, 1h, 24h)"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the bootstrap admin (promoted on startup)"},

	// Rate limiting for credential endpoints
	{Name: "login_rate_limit", Default: 10, Desc: "Login/signup POSTs allowed per IP per window"},
	{Name: "login_rate_window", Default: "1m", Desc: "Rate limit window"},

	// Welcome page auto-forward delay
	{Name: "welcome_delay", Default: "8s", Desc: "Welcome page auto-forward delay"},

	// Dashboard routing bound
	{Name: "route_timeout", Default: "10s", Desc: "Overall bound for a dashboard routing decision"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLIENTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		CSRFKey: appValues.String("csrf_key"),

		SiteName: appValues.String("site_name"),
		BaseURL:  appValues.String("base_url"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		EmailVerifyExpiry: appValues.Duration("email_verify_expiry", 24*time.Hour),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		AdminEmail: appValues.String("admin_email"),

		LoginRateLimit:  appValues.Int("login_rate_limit"),
		LoginRateWindow: appValues.Duration("login_rate_window", time.Minute),

		WelcomeDelay: appValues.Duration("welcome_delay", 8*time.Second),

		RouteTimeout: appValues.Duration("route_timeout", 10*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ClientHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret == "" {
		return fmt.Errorf("google_client_id is set but google_client_secret is empty")
	}
	return nil
}
