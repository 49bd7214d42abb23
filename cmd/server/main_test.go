package main

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/fsx"
	"github.com/riderota/core/pkg/fsx/fsxapi"
	"github.com/riderota/core/pkg/fsx/fsxlocal"
	"github.com/riderota/core/pkg/iam/iamcontainer"
	"github.com/riderota/core/pkg/notifx"
	"github.com/riderota/core/pkg/notifx/notifxconsole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testContainer(t *testing.T) *Container {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Env: "test", BodyLimit: 1 << 20},
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				AccessSecret:  "a-secret",
				RefreshSecret: "r-secret",
				AccessTTL:     15 * time.Minute,
				RefreshTTL:    time.Hour,
				Issuer:        "riderota",
			},
			Cookie:     config.CookieConfig{SameSite: "Lax"},
			Password:   config.PasswordConfig{BcryptCost: bcrypt.MinCost},
			Invitation: config.InvitationConfig{TTL: time.Hour, AcceptURLPath: "/invite"},
		},
		Tenancy: config.TenancyConfig{RootDomain: "riderota.com"},
		Assets:  config.AssetsConfig{Dir: t.TempDir()},
	}

	c := &Container{Config: cfg, Mailer: notifx.NewClient(notifxconsole.NewConsoleProvider(), "x@riderota.com")}
	iam, err := iamcontainer.New(iamcontainer.Deps{Cfg: cfg, Mailer: c.Mailer})
	require.NoError(t, err)
	c.IAM = iam

	store, err := fsxlocal.NewLocalFileSystem(cfg.Assets.Dir)
	require.NoError(t, err)
	c.AssetHandlers = fsxapi.NewAssetHandlers(fsx.NewTenantAssets(store))
	return c
}

func TestHealthOnAnyHost(t *testing.T) {
	app := newApp(testContainer(t))

	for _, host := range []string{"riderota.com", "10.0.0.7:4000", "acme.riderota.com"} {
		resp, err := app.Test(httptest.NewRequest("GET", "http://"+host+"/health", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, host)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	}
}

func TestTenantRoutesNeedTenantHost(t *testing.T) {
	app := newApp(testContainer(t))

	resp, err := app.Test(httptest.NewRequest("GET", "http://riderota.com/auth/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "http://acme.riderota.com/auth/me", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "http://acme.riderota.com/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCORSAllowsTenantOrigins(t *testing.T) {
	app := newApp(testContainer(t))

	req := httptest.NewRequest("OPTIONS", "http://acme.riderota.com/auth/login", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://acme.riderota.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, "POST")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://acme.riderota.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))

	req = httptest.NewRequest("OPTIONS", "http://acme.riderota.com/auth/login", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://evil.example")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, "POST")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
