// Package fsxapi serves tenant assets over HTTP.
package fsxapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/fsx"
	"github.com/riderota/core/pkg/iam/tenant"
)

type AssetHandlers struct {
	assets *fsx.TenantAssets
}

func NewAssetHandlers(assets *fsx.TenantAssets) *AssetHandlers {
	return &AssetHandlers{assets: assets}
}

func (h *AssetHandlers) RegisterRoutes(router fiber.Router) {
	router.Get("/:tenant/assets/*", h.Get)
}

// Get streams <tenant>/<path> from the store. The tenant comes from the
// host, so a request can only ever read its own tenant's directory.
func (h *AssetHandlers) Get(c *fiber.Ctx) error {
	slug, ok := tenant.FromCtx(c)
	if !ok {
		return fsx.ErrNotFound(c.Params("*"))
	}

	rc, info, err := h.assets.Open(c.UserContext(), slug, c.Params("*"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, info.ContentType)
	c.Set(fiber.HeaderLastModified, info.ModTime.UTC().Format(http.TimeFormat))
	return c.SendStream(rc, int(info.Size))
}
