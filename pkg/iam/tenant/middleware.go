package tenant

import (
	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
)

const localsKey = "tenant"

// Middleware resolves the tenant from the Host header and rewrites the
// request path to /<slug><path>, so routes, static assets and pages are
// all registered under /:tenant. Unresolvable hosts end the request with a
// 400 and never reach a handler.
func Middleware(rootDomain string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug, err := Resolve(c.Hostname(), rootDomain)
		if err != nil {
			logx.WithContext(c.UserContext()).
				WithField("host", c.Hostname()).
				Debug("rejecting request for unresolvable tenant")
			return err
		}

		c.Locals(localsKey, slug)
		c.SetUserContext(kernel.WithTenant(c.UserContext(), slug))
		c.Path("/" + slug.String() + c.Path())

		return c.Next()
	}
}

// FromCtx returns the tenant resolved for this request.
func FromCtx(c *fiber.Ctx) (kernel.TenantSlug, bool) {
	slug, ok := c.Locals(localsKey).(kernel.TenantSlug)
	return slug, ok && !slug.IsEmpty()
}
