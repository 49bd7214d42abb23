// Package invitationapi serves invitation creation, inspection and
// registration.
package invitationapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/riderota/core/pkg/iam/auth"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/iam/invitation/invitationsrv"
	"github.com/riderota/core/pkg/iam/tenant"
	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/iam/user/usersrv"
	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
	"github.com/riderota/core/pkg/validatex"
)

// RegisterRequest is the registration form. Role and TenantSlug are
// accepted for compatibility with older clients and never used.
type RegisterRequest struct {
	Token string `json:"token" validate:"required"`
	user.RegistrationData
}

type InvitationResponse struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	Role           kernel.Role       `json:"role"`
	TenantSlug     kernel.TenantSlug `json:"tenant_slug"`
	WelcomeMessage *string           `json:"welcome_message,omitempty"`
	ExpiresAt      time.Time         `json:"expires_at"`
}

// ClassificationResponse tells the UI which page to render for a token.
type ClassificationResponse struct {
	State      invitation.Status   `json:"state"`
	Page       string              `json:"page"`
	Invitation *InvitationResponse `json:"invitation,omitempty"`
}

type RegisterResponse struct {
	User user.UserResponse `json:"user"`
}

func toResponse(inv *invitation.Invitation) *InvitationResponse {
	return &InvitationResponse{
		ID:             inv.ID,
		Email:          inv.Email,
		Role:           inv.Role,
		TenantSlug:     inv.TenantSlug,
		WelcomeMessage: inv.WelcomeMessage,
		ExpiresAt:      inv.ExpiresAt,
	}
}

type InvitationHandlers struct {
	invitations *invitationsrv.Service
	provisioner *usersrv.Provisioner
	codec       auth.TokenCodec
	jar         *auth.CookieJar
	audit       auth.AuditService
	validator   *validatex.Validator
}

func NewInvitationHandlers(
	invitations *invitationsrv.Service,
	provisioner *usersrv.Provisioner,
	codec auth.TokenCodec,
	jar *auth.CookieJar,
	audit auth.AuditService,
	validator *validatex.Validator,
) *InvitationHandlers {
	return &InvitationHandlers{
		invitations: invitations,
		provisioner: provisioner,
		codec:       codec,
		jar:         jar,
		audit:       audit,
		validator:   validator,
	}
}

func (h *InvitationHandlers) RegisterRoutes(router fiber.Router, sessions *auth.SessionMiddleware) {
	router.Post("/:tenant/api/invitations", sessions.Authenticate(), h.Create)
	router.Get("/:tenant/invitations/:token", h.Inspect)
	router.Post("/:tenant/register", h.Register)
}

// Create invites someone into the caller's tenant.
func (h *InvitationHandlers) Create(c *fiber.Ctx) error {
	ac, ok := auth.FromCtx(c)
	if !ok {
		return auth.ErrUnauthenticated()
	}

	var req invitationsrv.CreateRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}

	inv, err := h.invitations.Create(c.UserContext(), ac, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(inv))
}

// Inspect classifies a token for the request's tenant and answers with the
// page the UI should render, using that page's status code.
func (h *InvitationHandlers) Inspect(c *fiber.Ctx) error {
	slug, ok := tenant.FromCtx(c)
	if !ok {
		return invitation.ErrorFor(invitation.StatusNotFound)
	}

	status, inv, err := h.invitations.Classify(c.UserContext(), c.Params("token"), slug)
	if err != nil {
		return err
	}

	page := invitation.PageFor(status)
	resp := ClassificationResponse{State: status, Page: page.Name}
	if inv != nil {
		resp.Invitation = toResponse(inv)
	}
	return c.Status(page.HTTPStatus).JSON(resp)
}

// Register redeems an invitation and signs the new user in. The invitation
// is classified again here; an earlier Inspect proves nothing.
func (h *InvitationHandlers) Register(c *fiber.Ctx) error {
	slug, ok := tenant.FromCtx(c)
	if !ok {
		return invitation.ErrorFor(invitation.StatusNotFound)
	}

	var req RegisterRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}

	ctx := c.UserContext()
	status, inv, err := h.invitations.Classify(ctx, req.Token, slug)
	if err != nil {
		return err
	}
	if err := invitation.ErrorFor(status); err != nil {
		return err
	}

	u, err := h.provisioner.Provision(ctx, inv, req.RegistrationData)
	if err != nil {
		return err
	}

	if err := h.invitations.Redeem(ctx, req.Token); err != nil {
		logx.WithContext(ctx).WithError(err).
			WithField("invitation_id", inv.ID).
			Warn("user provisioned but invitation could not be marked redeemed")
	}

	pair, err := h.codec.Issue(auth.Claim{SubjectID: u.ID, TenantSlug: u.TenantSlug})
	if err != nil {
		return err
	}
	h.jar.Write(c, pair)
	h.audit.LogAccountCreated(ctx, u.ID, u.Role, c.IP())

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{User: u.ToResponse()})
}
