package fsxapi_test

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/errx/errxfiber"
	"github.com/riderota/core/pkg/fsx"
	"github.com/riderota/core/pkg/fsx/fsxapi"
	"github.com/riderota/core/pkg/fsx/fsxlocal"
	"github.com/riderota/core/pkg/iam/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetsFollowHostTenant(t *testing.T) {
	root := t.TempDir()
	for _, slug := range []string{"acme", "globex"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, slug), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, slug, "site.css"), []byte("/* "+slug+" */"), 0o644))
	}
	store, err := fsxlocal.NewLocalFileSystem(root)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: errxfiber.ErrorHandler})
	app.Use(tenant.Middleware("riderota.com"))
	fsxapi.NewAssetHandlers(fsx.NewTenantAssets(store)).RegisterRoutes(app)

	for _, slug := range []string{"acme", "globex"} {
		resp, err := app.Test(httptest.NewRequest("GET", "http://"+slug+".riderota.com/assets/site.css", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/css")
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "/* "+slug+" */", string(body))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "http://acme.riderota.com/assets/missing.css", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
