package config_test

import (
	"testing"
	"time"

	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "Riderota.com")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "r")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "riderota.com", cfg.Tenancy.RootDomain)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.JWT.RefreshTTL)
	assert.Equal(t, 72*time.Hour, cfg.Auth.Invitation.TTL)
	assert.True(t, cfg.Auth.Cookie.Secure)
	assert.True(t, cfg.Server.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "riderota.test")
	t.Setenv("APP_ENV", "development")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ORIGINS", "https://a.riderota.test, https://b.riderota.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Auth.JWT.AccessTTL)
	assert.True(t, cfg.Auth.Cookie.Secure)
	assert.Equal(t, []string{"https://a.riderota.test", "https://b.riderota.test"}, cfg.Server.CORSOrigins)
}

func TestLoadRequiresRootDomain(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errx.HasCode(err, config.CodeInvalid))
}
