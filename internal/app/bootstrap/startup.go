// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/resources"
	"github.com/kestrelworks/clienthub/internal/app/store/emailverify"
	"github.com/kestrelworks/clienthub/internal/app/store/oauthstate"
	profilestore "github.com/kestrelworks/clienthub/internal/app/store/profiles"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/app/system/viewdata"
	"github.com/kestrelworks/clienthub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// tokenCleanup runs for the life of the process; Shutdown stops it.
var tokenCleanup *workers.TokenCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It is the
// place to load shared resources (like templates), warm caches, or perform
// any app-wide setup that depends on config and backends.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{Medium: appCfg.RouteTimeout})
	viewdata.Configure(appCfg.SiteName)

	// Promote the configured bootstrap admin. A missing profile is fine:
	// the promotion happens on a later restart, after their first login
	// has created the profile row.
	if appCfg.AdminEmail != "" {
		promoted, err := profilestore.New(deps.MongoDatabase).PromoteToAdminByEmail(ctx, appCfg.AdminEmail)
		if err != nil {
			logger.Error("admin bootstrap failed", zap.String("email", appCfg.AdminEmail), zap.Error(err))
			return err
		}
		if promoted {
			logger.Info("bootstrap admin promoted", zap.String("email", appCfg.AdminEmail))
		} else {
			logger.Info("bootstrap admin has no profile yet; will promote after first login",
				zap.String("email", appCfg.AdminEmail))
		}
	}

	tokenCleanup = workers.NewTokenCleanup(
		emailverify.New(deps.MongoDatabase, appCfg.EmailVerifyExpiry),
		oauthstate.New(deps.MongoDatabase),
		logger,
		time.Hour,
	)
	tokenCleanup.Start()

	return nil
}
