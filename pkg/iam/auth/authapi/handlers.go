// Package authapi exposes login, logout and the current identity over HTTP.
package authapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/iam/auth"
	"github.com/riderota/core/pkg/iam/tenant"
	"github.com/riderota/core/pkg/iam/user/usersrv"
	"github.com/riderota/core/pkg/validatex"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthHandlers struct {
	codec         auth.TokenCodec
	jar           *auth.CookieJar
	authenticator *usersrv.Authenticator
	audit         auth.AuditService
	validator     *validatex.Validator
}

func NewAuthHandlers(codec auth.TokenCodec, jar *auth.CookieJar, authenticator *usersrv.Authenticator, audit auth.AuditService, validator *validatex.Validator) *AuthHandlers {
	return &AuthHandlers{
		codec:         codec,
		jar:           jar,
		authenticator: authenticator,
		audit:         audit,
		validator:     validator,
	}
}

// RegisterRoutes mounts the handlers under /:tenant/auth. Paths already
// carry the tenant prefix added by the tenant middleware.
func (h *AuthHandlers) RegisterRoutes(router fiber.Router, sessions *auth.SessionMiddleware) {
	g := router.Group("/:tenant/auth")
	g.Post("/login", h.Login)
	g.Post("/logout", h.Logout)
	g.Get("/me", sessions.Authenticate(), h.Me)
}

// Login checks credentials against the request's tenant and starts a
// session.
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	slug, ok := tenant.FromCtx(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req LoginRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}

	ctx := c.UserContext()
	u, err := h.authenticator.Authenticate(ctx, slug, req.Email, req.Password)
	if err != nil {
		h.audit.LogLoginAttempt(ctx, req.Email, false, c.IP())
		return err
	}

	pair, err := h.codec.Issue(auth.Claim{SubjectID: u.ID, TenantSlug: u.TenantSlug})
	if err != nil {
		return err
	}

	h.jar.Write(c, pair)
	h.audit.LogLoginAttempt(ctx, u.Email, true, c.IP())

	return c.JSON(u.ToResponse())
}

// Logout expires both cookies. Sessions hold no server state, so there is
// nothing else to revoke.
func (h *AuthHandlers) Logout(c *fiber.Ctx) error {
	if claim, err := h.codec.VerifyAccess(h.jar.Read(c).AccessToken); err == nil {
		h.audit.LogLogout(c.UserContext(), claim.SubjectID, c.IP())
	}
	h.jar.Clear(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	ac, ok := auth.FromCtx(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	u, err := h.authenticator.Get(c.UserContext(), ac.TenantSlug, ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(u.ToResponse())
}
