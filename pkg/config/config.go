// Package config loads the process configuration from the environment,
// reading a .env file first when one is present.
package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riderota/core/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CONFIG")

var CodeInvalid = ErrRegistry.Register("INVALID", errx.TypeConfiguration, http.StatusInternalServerError, "Invalid configuration")

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Tenancy  TenancyConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Notifx   NotifxConfig
	Jobx     JobxConfig
	Assets   AssetsConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
	BodyLimit   int
}

func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

type AuthConfig struct {
	JWT        JWTConfig
	Cookie     CookieConfig
	Password   PasswordConfig
	Invitation InvitationConfig
}

// JWTConfig holds the two independent signing secrets. Emptiness is
// checked by the token codec when it is built.
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type CookieConfig struct {
	Secure   bool
	SameSite string
}

type PasswordConfig struct {
	BcryptCost int
}

type InvitationConfig struct {
	TTL time.Duration
	// AcceptURLPath is appended to https://<slug>.<root> in invitation emails.
	AcceptURLPath string
}

type TenancyConfig struct {
	RootDomain string
}

type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	URL string
}

type AssetsConfig struct {
	Dir string
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "4000"),
			Env:         env,
			CORSOrigins: getEnvStringSlice("CORS_ORIGINS", nil),
			BodyLimit:   getEnvInt("BODY_LIMIT", 1<<20),
		},
		Auth: AuthConfig{
			JWT: JWTConfig{
				AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
				RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
				AccessTTL:     getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
				RefreshTTL:    getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
				Issuer:        getEnv("JWT_ISSUER", "riderota"),
			},
			Cookie: CookieConfig{
				Secure:   getEnvBool("COOKIE_SECURE", env == "production"),
				SameSite: getEnv("COOKIE_SAMESITE", "Lax"),
			},
			Password: PasswordConfig{
				BcryptCost: getEnvInt("BCRYPT_COST", 12),
			},
			Invitation: InvitationConfig{
				TTL:           getEnvDuration("INVITATION_TTL", 72*time.Hour),
				AcceptURLPath: getEnv("INVITATION_ACCEPT_PATH", "/invite"),
			},
		},
		Tenancy: TenancyConfig{
			RootDomain: strings.ToLower(strings.TrimSpace(os.Getenv("ROOT_DOMAIN"))),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Notifx: loadNotifxConfig(),
		Jobx:   loadJobxConfig(),
		Assets: AssetsConfig{
			Dir: getEnv("ASSETS_DIR", "./assets"),
		},
	}

	if cfg.Tenancy.RootDomain == "" {
		return nil, ErrRegistry.NewWithMessage(CodeInvalid, "ROOT_DOMAIN is required").
			WithDetail("variable", "ROOT_DOMAIN")
	}
	if strings.Contains(cfg.Tenancy.RootDomain, ":") {
		return nil, ErrRegistry.NewWithMessage(CodeInvalid, "ROOT_DOMAIN must not carry a port").
			WithDetail("variable", "ROOT_DOMAIN")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func getEnvStringSlice(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
