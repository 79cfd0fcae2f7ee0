// internal/app/system/dashrouter/dashrouter.go

// Package dashrouter decides where an incoming user lands. Every entry
// surface (login, OAuth callback, direct dashboard hit, welcome page) runs
// the same decision procedure so a user can never see two different
// answers for the same settled state.
//
// The procedure is strictly ordered: check the session before touching any
// store, reconcile missing rows, resolve the role, then fail open to the
// client dashboard unless the user has no profile and no client record at
// all, which is the only terminal error.
package dashrouter

import (
	"context"

	"github.com/kestrelworks/clienthub/internal/app/system/auth"
	"github.com/kestrelworks/clienthub/internal/app/system/metrics"
	"github.com/kestrelworks/clienthub/internal/app/system/reconcile"
	"github.com/kestrelworks/clienthub/internal/app/system/timeouts"
	"github.com/kestrelworks/clienthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Outcome classifies a routing decision.
type Outcome string

const (
	OutcomeLogin  Outcome = "login"
	OutcomeClient Outcome = "client"
	OutcomeAdmin  Outcome = "admin"
	OutcomeError  Outcome = "error"
)

// Dashboard and login paths. These are the only places a routing decision
// can point at.
const (
	PathLogin  = "/login"
	PathClient = "/client-dashboard"
	PathAdmin  = "/admin-dashboard"
)

// Decision is the result of one routing pass. Path is empty only for
// OutcomeError, where the caller renders an error card in place instead of
// redirecting.
type Decision struct {
	Outcome Outcome
	Path    string
}

var (
	loginDecision  = Decision{Outcome: OutcomeLogin, Path: PathLogin}
	clientDecision = Decision{Outcome: OutcomeClient, Path: PathClient}
	adminDecision  = Decision{Outcome: OutcomeAdmin, Path: PathAdmin}
	errorDecision  = Decision{Outcome: OutcomeError}
)

// DestinationForRole maps a role to its dashboard. Staff roles go to the
// admin dashboard; client, unknown, and anything else go to the client
// dashboard. Pure, so the header widget and the router can never disagree.
func DestinationForRole(role models.Role) Decision {
	if role.IsStaff() {
		return adminDecision
	}
	return clientDecision
}

// Reconciler ensures profile and client rows exist before routing.
type Reconciler interface {
	EnsureProfileAndClient(ctx context.Context, id reconcile.Identity)
}

// RoleResolver resolves a user's role, reporting RoleUnknown on failure.
type RoleResolver interface {
	Resolve(ctx context.Context, userID primitive.ObjectID) models.Role
}

// ProfileReader and ClientReader are the existence probes used for the
// terminal-error check. Missing rows return (nil, nil).
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
}

type ClientReader interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Client, error)
}

// Router runs the dashboard decision procedure.
type Router struct {
	rec      Reconciler
	roles    RoleResolver
	profiles ProfileReader
	clients  ClientReader
	log      *zap.Logger
}

func New(rec Reconciler, roles RoleResolver, profiles ProfileReader, clients ClientReader, logger *zap.Logger) *Router {
	return &Router{rec: rec, roles: roles, profiles: profiles, clients: clients, log: logger}
}

// Route decides where the holder of sess lands. A nil session short
// circuits to login with zero store reads. The whole pass, including
// reconcile and role retries, runs under one deadline; if it expires the
// existence probes fail and the decision degrades to OutcomeError rather
// than hanging.
//
// Route is idempotent: repeated calls for the same settled user state
// return the same decision.
func (rt *Router) Route(ctx context.Context, sess *auth.Session) Decision {
	if sess == nil || sess.UserID == "" {
		return rt.decide(loginDecision)
	}

	userID, err := primitive.ObjectIDFromHex(sess.UserID)
	if err != nil {
		rt.log.Warn("session carries malformed user id",
			zap.String("user_id", sess.UserID),
			zap.Error(err))
		return rt.decide(loginDecision)
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	rt.rec.EnsureProfileAndClient(ctx, reconcile.Identity{
		UserID:   userID,
		Email:    sess.Email,
		FullName: sess.Metadata.FullName,
		Metadata: sess.Metadata,
	})

	role := rt.roles.Resolve(ctx, userID)
	if role != models.RoleUnknown {
		return rt.decide(DestinationForRole(role))
	}

	// Role never resolved. Fail open to the client dashboard as long as
	// the user exists in either collection; a user with no profile AND no
	// client record after reconciliation is the one unroutable state.
	profile, perr := rt.profiles.GetByUserID(ctx, userID)
	client, cerr := rt.clients.GetByUserID(ctx, userID)
	if profile == nil && client == nil {
		rt.log.Error("user has no profile and no client record after reconcile",
			zap.String("user_id", userID.Hex()),
			zap.NamedError("profile_err", perr),
			zap.NamedError("client_err", cerr))
		return rt.decide(errorDecision)
	}

	rt.log.Info("routing unresolved role to client dashboard",
		zap.String("user_id", userID.Hex()))
	return rt.decide(clientDecision)
}

func (rt *Router) decide(d Decision) Decision {
	metrics.RouteDecisions.WithLabelValues(string(d.Outcome)).Inc()
	return d
}
