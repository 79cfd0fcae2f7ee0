// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	aboutfeature "github.com/kestrelworks/clienthub/internal/app/features/about"
	adminfeature "github.com/kestrelworks/clienthub/internal/app/features/admin"
	admindashfeature "github.com/kestrelworks/clienthub/internal/app/features/admindash"
	authcallbackfeature "github.com/kestrelworks/clienthub/internal/app/features/authcallback"
	authgooglefeature "github.com/kestrelworks/clienthub/internal/app/features/authgoogle"
	blogfeature "github.com/kestrelworks/clienthub/internal/app/features/blog"
	clientdashfeature "github.com/kestrelworks/clienthub/internal/app/features/clientdash"
	contactfeature "github.com/kestrelworks/clienthub/internal/app/features/contact"
	dashboardfeature "github.com/kestrelworks/clienthub/internal/app/features/dashboard"
	errorsfeature "github.com/kestrelworks/clienthub/internal/app/features/errors"
	healthfeature "github.com/kestrelworks/clienthub/internal/app/features/health"
	homefeature "github.com/kestrelworks/clienthub/internal/app/features/home"
	loginfeature "github.com/kestrelworks/clienthub/internal/app/features/login"
	logoutfeature "github.com/kestrelworks/clienthub/internal/app/features/logout"
	pricingfeature "github.com/kestrelworks/clienthub/internal/app/features/pricing"
	servicesfeature "github.com/kestrelworks/clienthub/internal/app/features/services"
	testimonialsfeature "github.com/kestrelworks/clienthub/internal/app/features/testimonials"
	welcomefeature "github.com/kestrelworks/clienthub/internal/app/features/welcome"
	clientstore "github.com/kestrelworks/clienthub/internal/app/store/clients"
	"github.com/kestrelworks/clienthub/internal/app/store/emailverify"
	loginstore "github.com/kestrelworks/clienthub/internal/app/store/logins"
	messagestore "github.com/kestrelworks/clienthub/internal/app/store/messages"
	"github.com/kestrelworks/clienthub/internal/app/store/oauthstate"
	poststore "github.com/kestrelworks/clienthub/internal/app/store/posts"
	profilestore "github.com/kestrelworks/clienthub/internal/app/store/profiles"
	projectstore "github.com/kestrelworks/clienthub/internal/app/store/projects"
	userstore "github.com/kestrelworks/clienthub/internal/app/store/users"
	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/dashrouter"
	"github.com/kestrelworks/clienthub/internal/app/system/mailer"
	"github.com/kestrelworks/clienthub/internal/app/system/metrics"
	"github.com/kestrelworks/clienthub/internal/app/system/ratelimit"
	"github.com/kestrelworks/clienthub/internal/app/system/reconcile"
	"github.com/kestrelworks/clienthub/internal/app/system/roles"
	"github.com/kestrelworks/clienthub/internal/app/system/usercache"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It wires the session layer, the
// reconcile/resolve/route pipeline, and every feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Per-request user loads go through a short-lived cache; the auth event
	// bus invalidates entries on sign-out so role changes and disables take
	// effect promptly without a Mongo read on every request.
	cache := usercache.New(userstore.NewFetcher(deps.MongoDatabase), usercache.DefaultTTL)
	cache.SubscribeInvalidation(sessionMgr.Events())
	sessionMgr.SetUserFetcher(cache)
	metrics.SubscribeAuthEvents(sessionMgr.Events())

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Stores.
	db := deps.MongoDatabase
	users := userstore.New(db)
	profiles := profilestore.New(db)
	clients := clientstore.New(db)
	projects := projectstore.New(db)
	messages := messagestore.New(db)
	posts := poststore.New(db)
	logins := loginstore.New(db)
	verify := emailverify.New(db, appCfg.EmailVerifyExpiry)
	states := oauthstate.New(db)

	// The reconcile → resolve → route pipeline behind every dashboard entry.
	reconciler := reconcile.New(profiles, clients, logger)
	resolver := roles.New(profiles, logger)
	router := dashrouter.New(reconciler, resolver, profiles, clients, logger)

	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailSMTPUser,
		appCfg.MailSMTPPass, appCfg.MailFrom, appCfg.MailFromName, logger)

	// Credential endpoints share one per-IP limiter so a burst across
	// login and signup still counts against the same budget.
	loginLimiter := ratelimit.New(appCfg.LoginRateLimit, appCfg.LoginRateWindow)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection for all form POSTs. Safe methods pass through.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public marketing pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	aboutHandler := aboutfeature.NewHandler(logger)
	r.Mount("/about", aboutfeature.Routes(aboutHandler))

	servicesHandler := servicesfeature.NewHandler(logger)
	r.Mount("/services", servicesfeature.Routes(servicesHandler))

	pricingHandler := pricingfeature.NewHandler(logger)
	r.Mount("/pricing", pricingfeature.Routes(pricingHandler))

	testimonialsHandler := testimonialsfeature.NewHandler(logger)
	r.Mount("/testimonials", testimonialsfeature.Routes(testimonialsHandler))

	blogHandler := blogfeature.NewHandler(posts, errLog, logger)
	r.Mount("/blog", blogfeature.Routes(blogHandler))

	contactHandler := contactfeature.NewHandler(messages, errLog, logger)
	r.Mount("/contact", withPostLimit(loginLimiter, contactfeature.Routes(contactHandler)))

	// Authentication
	googleEnabled := appCfg.GoogleClientID != "" && appCfg.GoogleClientSecret != ""
	loginHandler := loginfeature.NewHandler(users, logins, verify, sessionMgr, router, mail,
		errLog, appCfg.BaseURL, appCfg.SiteName, googleEnabled, logger)
	r.Mount("/login", withPostLimit(loginLimiter, loginfeature.Routes(loginHandler)))
	r.Mount("/signup", withPostLimit(loginLimiter, loginfeature.SignupRoutes(loginHandler)))

	callbackHandler := authcallbackfeature.NewHandler(users, logins, verify, sessionMgr, router, errLog, logger)
	r.Mount("/auth/callback", authcallbackfeature.Routes(callbackHandler))

	googleHandler := authgooglefeature.NewHandler(users, logins, states, sessionMgr, router,
		errLog, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role-based dashboards
	dashboardHandler := dashboardfeature.NewHandler(sessionMgr, router, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))

	welcomeHandler := welcomefeature.NewHandler(appCfg.WelcomeDelay, logger)
	r.Mount("/welcome", welcomefeature.Routes(welcomeHandler, sessionMgr))

	clientDashHandler := clientdashfeature.NewHandler(clients, projects, messages, errLog, logger)
	r.Mount("/client-dashboard", clientdashfeature.Routes(clientDashHandler, sessionMgr))

	adminDashHandler := admindashfeature.NewHandler(db, clients, messages, errLog, logger)
	r.Mount("/admin-dashboard", admindashfeature.Routes(adminDashHandler, sessionMgr))

	// Staff management screens
	adminHandler := adminfeature.NewHandler(clients, profiles, projects, messages, posts, errLog, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr))

	return r, nil
}

// withPostLimit rate-limits the unsafe methods of a sub-router and leaves
// page GETs alone.
func withPostLimit(l *ratelimit.Limiter, next http.Handler) http.Handler {
	limited := l.Middleware(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}
