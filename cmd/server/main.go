package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/errx/errxfiber"
	"github.com/riderota/core/pkg/iam/tenant"
	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
)

func main() {
	// 1. Initialize Logger
	logx.SetDefaultLogger(logx.NewLogger(logx.LoadFromEnv()))
	logx.Info("🚀 Starting Riderota API Server...")

	// 2. Load Config
	cfg, err := config.Load()
	if err != nil {
		logx.WithError(err).Fatal("invalid configuration")
	}

	// 3. Initialize Dependency Container
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		logx.WithError(err).Fatal("failed to initialize container")
	}
	defer container.Cleanup()

	// 4. Create Fiber App
	app := newApp(container)

	// 5. Background workers
	workersDone := container.StartBackgroundServices(ctx)

	// 6. Start Server with Graceful Shutdown
	startServer(app, cfg.Server.Port)

	cancel()
	<-workersDone
}

func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               "Riderota API",
		DisableStartupMessage: true,
		ErrorHandler:          errxfiber.ErrorHandler,
		BodyLimit:             cfg.Server.BodyLimit,
		IdleTimeout:           120 * time.Second,
	})

	// Global Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.Server.IsProduction(),
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(kernel.WithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID)))
		return c.Next()
	})

	app.Use(cors.New(corsConfig(cfg)))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${host}${path} | ${ip} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	// Health check runs before tenant resolution so probes can use any host.
	app.Get("/health", healthCheckHandler(container))

	// Everything below is tenant-scoped and sees /<slug><path>.
	app.Use(tenant.Middleware(cfg.Tenancy.RootDomain))

	container.IAM.RegisterRoutes(app)
	logx.Info("✓ Auth, invitation and registration routes registered")

	container.AssetHandlers.RegisterRoutes(app)
	logx.Info("✓ Asset routes registered")

	return app
}

// corsConfig allows every tenant subdomain with credentials, plus any
// explicitly configured origins.
func corsConfig(cfg *config.Config) cors.Config {
	root := cfg.Tenancy.RootDomain

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"https://" + root}
	}

	return cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowOriginsFunc: func(origin string) bool {
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			_, err = tenant.Resolve(u.Host, root)
			return err == nil
		},
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, HEAD, OPTIONS",
		AllowCredentials: true,
		ExposeHeaders:    "X-Request-ID",
	}
}

// ============================================================================
// Handler Functions
// ============================================================================

func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":  "healthy",
			"service": "riderota-api",
		}

		if container.DB != nil {
			if err := container.DB.PingContext(c.UserContext()); err != nil {
				health["db"] = "unhealthy"
				health["status"] = "degraded"
			} else {
				health["db"] = "healthy"
			}
		}

		if container.Redis != nil {
			if err := container.Redis.Ping(c.UserContext()).Err(); err != nil {
				health["redis"] = "unhealthy"
				health["status"] = "degraded"
			} else {
				health["redis"] = "healthy"
			}
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	}
}

// ============================================================================
// Lifecycle
// ============================================================================

// startServer blocks until a shutdown signal arrives and the server has
// drained.
func startServer(app *fiber.App, port string) {
	go func() {
		logx.Info(strings.Repeat("=", 61))
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)
		logx.Info(strings.Repeat("=", 61))

		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
