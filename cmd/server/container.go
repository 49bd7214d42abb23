// Composition root. Owns infrastructure (DB, Redis, mail, assets) and
// composes the identity module.
package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/riderota/core/migrations"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/fsx"
	"github.com/riderota/core/pkg/fsx/fsxapi"
	"github.com/riderota/core/pkg/fsx/fsxlocal"
	"github.com/riderota/core/pkg/iam/iamcontainer"
	"github.com/riderota/core/pkg/jobx"
	"github.com/riderota/core/pkg/jobx/jobxredis"
	"github.com/riderota/core/pkg/logx"
	"github.com/riderota/core/pkg/notifx"
	"github.com/riderota/core/pkg/notifx/notifxconsole"
	"github.com/riderota/core/pkg/notifx/notifxses"
)

// Container holds shared infrastructure and composed module containers.
type Container struct {
	Config *config.Config

	// Infrastructure. DB and Redis are nil when not configured.
	DB     *sqlx.DB
	Redis  *redis.Client
	Jobs   *jobx.Client
	Mailer *notifx.Client

	AssetHandlers *fsxapi.AssetHandlers

	// Bounded-context containers
	IAM *iamcontainer.Container
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initModules(); err != nil {
		c.Cleanup()
		return nil, err
	}

	logx.Info("✅ Application container initialized")
	return c, nil
}

// ---------------------------------------------------------------------------
// Infrastructure: DB, Redis, mail and assets
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure(ctx context.Context) error {
	logx.Info("🏗️ Initializing infrastructure...")

	// 1. Database
	if c.Config.Database.URL != "" {
		db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
		if err != nil {
			return errx.Wrap(err, "failed to connect to database", errx.TypeExternal)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		c.DB = db
		logx.Info("  ✅ Database connected")

		if c.Config.Database.AutoMigrate {
			if err := migrations.Up(db.DB); err != nil {
				return err
			}
			logx.Info("  ✅ Migrations applied")
		}
	} else {
		logx.Warn("  ⚠️  DATABASE_URL not set")
	}

	// 2. Redis and the job outbox
	if c.Config.Redis.URL != "" {
		opts, err := redis.ParseURL(c.Config.Redis.URL)
		if err != nil {
			return errx.Wrap(err, "invalid REDIS_URL", errx.TypeConfiguration)
		}
		c.Redis = redis.NewClient(opts)
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			return errx.Wrap(err, "failed to connect to Redis", errx.TypeExternal)
		}
		c.Jobs = jobx.NewClient(jobxredis.NewRedisQueue(c.Redis), jobx.FromConfig(c.Config.Jobx))
		logx.Info("  ✅ Redis connected")
	} else {
		logx.Warn("  ⚠️  REDIS_URL not set")
	}

	// 3. Mail
	if err := c.initMailer(ctx); err != nil {
		return err
	}

	// 4. Tenant assets
	store, err := fsxlocal.NewLocalFileSystem(c.Config.Assets.Dir)
	if err != nil {
		return err
	}
	c.AssetHandlers = fsxapi.NewAssetHandlers(fsx.NewTenantAssets(store))
	logx.Infof("  ✅ Local asset store configured (path: %s)", store.GetBasePath())

	logx.Info("✅ Infrastructure initialized")
	return nil
}

func (c *Container) initMailer(ctx context.Context) error {
	cfg := c.Config.Notifx
	from := fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)

	switch cfg.Provider {
	case "ses":
		provider, err := notifxses.NewFromRegion(ctx, cfg.AWSRegion)
		if err != nil {
			return err
		}
		c.Mailer = notifx.NewClient(provider, from)
		logx.Infof("  ✅ SES mail provider configured (region: %s)", cfg.AWSRegion)

	case "console":
		c.Mailer = notifx.NewClient(notifxconsole.NewConsoleProvider(), from)
		logx.Info("  ✅ Console mail provider configured")

	default:
		return config.ErrRegistry.NewWithMessage(config.CodeInvalid, "unknown NOTIFX_PROVIDER (use 'console' or 'ses')").
			WithDetail("provider", cfg.Provider)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() error {
	logx.Info("📦 Initializing modules...")

	iam, err := iamcontainer.New(iamcontainer.Deps{
		DB:     c.DB,
		Cfg:    c.Config,
		Jobs:   c.Jobs,
		Mailer: c.Mailer,
	})
	if err != nil {
		return err
	}
	c.IAM = iam
	return nil
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// StartBackgroundServices runs the job workers until ctx is cancelled. The
// returned channel is closed once they have stopped.
func (c *Container) StartBackgroundServices(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if c.Jobs == nil {
		close(done)
		return done
	}

	logx.Info("🔄 Starting background services...")
	go func() {
		defer close(done)
		if err := c.Jobs.Start(ctx); err != nil {
			logx.WithError(err).Error("job workers stopped")
		}
	}()
	return done
}

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
