package main

import (
	"errors"
	"flag"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riderota/core/migrations"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/logx"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, version, force")
		steps   = flag.Int("steps", 0, "Number of migration steps (for up/down)")
		version = flag.Int("version", -1, "Target version (for force command)")
	)
	flag.Parse()

	logx.SetDefaultLogger(logx.NewLogger(logx.LoadFromEnv()))

	cfg, err := config.Load()
	if err != nil {
		logx.WithError(err).Fatal("invalid configuration")
	}
	if cfg.Database.URL == "" {
		logx.Fatal("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logx.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	m, err := migrations.New(db.DB)
	if err != nil {
		logx.WithError(err).Fatal("failed to create migrator")
	}

	switch *command {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
		exitOn(err, "migration up failed")
		logx.Info("✓ Migrations applied successfully")

	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
		exitOn(err, "migration down failed")
		logx.Info("✓ Migrations rolled back successfully")

	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logx.Info("No migrations applied")
			return
		}
		exitOn(err, "failed to read version")
		if dirty {
			logx.Fatalf("⚠ Database is in a dirty state (version %d)", v)
		}
		logx.Infof("Current migration version: %d", v)

	case "force":
		if *version < 0 {
			logx.Fatal("Version required for force command (use -version flag)")
		}
		exitOn(m.Force(*version), "force migration failed")
		logx.Infof("✓ Forced database to version %d", *version)

	default:
		logx.Fatalf("Unknown command: %s (supported: up, down, version, force)", *command)
	}
}

func exitOn(err error, msg string) {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logx.WithError(err).Fatal(msg)
	}
}
