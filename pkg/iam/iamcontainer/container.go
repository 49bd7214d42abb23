package iamcontainer

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/iam/auth"
	"github.com/riderota/core/pkg/iam/auth/authapi"
	"github.com/riderota/core/pkg/iam/auth/authinfra"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/iam/invitation/invitationapi"
	"github.com/riderota/core/pkg/iam/invitation/invitationinfra"
	"github.com/riderota/core/pkg/iam/invitation/invitationsrv"
	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/iam/user/userinfra"
	"github.com/riderota/core/pkg/iam/user/usersrv"
	"github.com/riderota/core/pkg/jobx"
	"github.com/riderota/core/pkg/logx"
	"github.com/riderota/core/pkg/notifx"
	"github.com/riderota/core/pkg/validatex"
)

// ---------------------------------------------------------------------------
// Deps: what the identity module needs from the process. DB and Jobs are
// optional; without them the module falls back to in-memory repositories
// and synchronous email.
// ---------------------------------------------------------------------------

type Deps struct {
	DB     *sqlx.DB
	Cfg    *config.Config
	Jobs   *jobx.Client
	Mailer *notifx.Client

	// Audit defaults to the logx audit service.
	Audit auth.AuditService

	// Clock replaces time.Now for token and invitation lifetimes.
	Clock func() time.Time
}

// ---------------------------------------------------------------------------
// Container: the public surface of the identity module.
// ---------------------------------------------------------------------------

type Container struct {
	Codec             *auth.JWTCodec
	Sessions          *auth.SessionManager
	CookieJar         *auth.CookieJar
	InvitationService *invitationsrv.Service
	Provisioner       *usersrv.Provisioner
	Authenticator     *usersrv.Authenticator

	AuthHandlers       *authapi.AuthHandlers
	InvitationHandlers *invitationapi.InvitationHandlers

	SessionMiddleware *auth.SessionMiddleware
}

// New builds the module graph. It fails when token signing is
// misconfigured, so a server never starts without usable secrets.
func New(deps Deps) (*Container, error) {
	logx.Info("🔧 Initializing IAM container...")

	cfg := deps.Cfg
	c := &Container{}

	// ── Repositories ─────────────────────────────────────────────────────

	var (
		userRepo       user.Repository
		invitationRepo invitation.Repository
	)
	if deps.DB != nil {
		userRepo = userinfra.NewPostgresUserRepository(deps.DB)
		invitationRepo = invitationinfra.NewPostgresInvitationRepository(deps.DB)
		logx.Info("  ✅ Using Postgres repositories")
	} else {
		userRepo = userinfra.NewMemoryUserRepository()
		invitationRepo = invitationinfra.NewMemoryInvitationRepository()
		logx.Warn("  ⚠️  Using in-memory repositories (data is lost on restart)")
	}

	// ── Credentials ──────────────────────────────────────────────────────

	var (
		codecOpts   []auth.CodecOption
		serviceOpts []invitationsrv.Option
	)
	if deps.Clock != nil {
		codecOpts = append(codecOpts, auth.WithClock(deps.Clock))
		serviceOpts = append(serviceOpts, invitationsrv.WithClock(deps.Clock))
	}

	codec, err := auth.NewJWTCodec(cfg.Auth.JWT, codecOpts...)
	if err != nil {
		return nil, err
	}
	c.Codec = codec
	c.Sessions = auth.NewSessionManager(codec)
	c.CookieJar = auth.NewCookieJar(
		cfg.Tenancy.RootDomain,
		cfg.Auth.Cookie.Secure,
		cfg.Auth.Cookie.SameSite,
		codec.AccessTTL(),
		codec.RefreshTTL(),
	)

	audit := deps.Audit
	if audit == nil {
		audit = authinfra.NewLogxAuditService()
	}

	// ── Notifications ────────────────────────────────────────────────────

	direct, err := invitationinfra.NewEmailNotifier(deps.Mailer, cfg.Tenancy.RootDomain, cfg.Auth.Invitation)
	if err != nil {
		return nil, err
	}
	var notifier invitation.Notifier = direct
	if deps.Jobs != nil {
		invitationinfra.RegisterEmailJob(deps.Jobs, direct)
		notifier = invitationinfra.NewQueuedNotifier(deps.Jobs, "")
		logx.Info("  ✅ Invitation emails go through the jobx outbox")
	} else {
		logx.Warn("  ⚠️  Sending invitation emails synchronously")
	}

	// ── Domain services ──────────────────────────────────────────────────

	hasher := userinfra.NewBcryptHasher(cfg.Auth.Password.BcryptCost)
	c.Provisioner = usersrv.NewProvisioner(userRepo, hasher)
	c.Authenticator = usersrv.NewAuthenticator(userRepo, hasher)
	c.InvitationService = invitationsrv.NewService(invitationRepo, notifier, audit, cfg.Auth.Invitation, serviceOpts...)

	// ── Handlers and middleware ──────────────────────────────────────────

	v := validatex.New()
	c.AuthHandlers = authapi.NewAuthHandlers(codec, c.CookieJar, c.Authenticator, audit, v)
	c.InvitationHandlers = invitationapi.NewInvitationHandlers(
		c.InvitationService,
		c.Provisioner,
		codec,
		c.CookieJar,
		audit,
		v,
	)
	c.SessionMiddleware = auth.NewSessionMiddleware(c.Sessions, c.CookieJar, audit)

	logx.Info("✅ IAM container initialized")
	return c, nil
}

// RegisterRoutes mounts every identity route. router must already run the
// tenant middleware.
func (c *Container) RegisterRoutes(router fiber.Router) {
	c.AuthHandlers.RegisterRoutes(router, c.SessionMiddleware)
	c.InvitationHandlers.RegisterRoutes(router, c.SessionMiddleware)
}
