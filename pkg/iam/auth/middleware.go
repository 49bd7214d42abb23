package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/kernel"
)

const authLocalsKey = "auth"

// SessionMiddleware guards routes that need an identity. It must run after
// the tenant middleware.
type SessionMiddleware struct {
	sessions *SessionManager
	jar      *CookieJar
	audit    AuditService
}

func NewSessionMiddleware(sessions *SessionManager, jar *CookieJar, audit AuditService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, jar: jar, audit: audit}
}

// Authenticate resolves the request's credential pair. On failure no
// downstream handler runs. A rotated pair is written to the response
// before the next handler is invoked.
func (m *SessionMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		outcome, err := m.sessions.Resolve(m.jar.Read(c))
		if err != nil {
			return err
		}

		tenant, ok := kernel.TenantFrom(c.UserContext())
		if !ok || outcome.Claim.TenantSlug != tenant {
			return ErrTenantMismatch().
				WithDetail("tenant", tenant.String())
		}

		if outcome.Rotated {
			m.jar.Write(c, outcome.Pair)
			m.audit.LogTokenRotation(c.UserContext(), outcome.Claim.SubjectID, c.IP())
		}

		ac := &kernel.AuthContext{
			UserID:     outcome.Claim.SubjectID,
			TenantSlug: outcome.Claim.TenantSlug,
		}
		c.Locals(authLocalsKey, ac)
		c.SetUserContext(kernel.WithAuth(c.UserContext(), ac))

		return c.Next()
	}
}

// FromCtx returns the identity stored by Authenticate.
func FromCtx(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	ac, ok := c.Locals(authLocalsKey).(*kernel.AuthContext)
	return ac, ok && ac.IsValid()
}
