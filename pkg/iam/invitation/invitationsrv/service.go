package invitationsrv

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/auth"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
)

const tokenBytes = 32

// CreateRequest is the body an admin submits to invite someone.
type CreateRequest struct {
	Email          string  `json:"email" validate:"required,email,max=254"`
	Role           string  `json:"role" validate:"required,invitable_role"`
	WelcomeMessage *string `json:"welcome_message,omitempty" validate:"omitempty,max=1000"`
}

// Service creates, classifies and redeems invitations.
type Service struct {
	repo     invitation.Repository
	notifier invitation.Notifier
	audit    auth.AuditService
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo invitation.Repository, notifier invitation.Notifier, audit auth.AuditService, cfg config.InvitationConfig, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new invitation for the inviter's tenant and notifies the
// invitee. The tenant always comes from inviter. A notification failure is
// logged and does not undo the invitation.
func (s *Service) Create(ctx context.Context, inviter *kernel.AuthContext, req CreateRequest) (*invitation.Invitation, error) {
	if inviter == nil || !inviter.IsValid() {
		return nil, auth.ErrUnauthenticated()
	}

	role, ok := kernel.ParseRole(req.Role)
	if !ok || !role.IsInvitable() {
		return nil, invitation.ErrInvalidRole().WithDetail("role", req.Role)
	}

	token, err := newToken()
	if err != nil {
		return nil, errx.Wrap(err, "failed to generate invitation token", errx.TypeInternal)
	}

	var welcome *string
	if req.WelcomeMessage != nil {
		if msg := strings.TrimSpace(*req.WelcomeMessage); msg != "" {
			welcome = &msg
		}
	}

	now := s.now()
	inv := &invitation.Invitation{
		ID:             uuid.NewString(),
		Token:          token,
		Email:          invitation.NormalizeEmail(req.Email),
		Role:           role,
		TenantSlug:     inviter.TenantSlug,
		WelcomeMessage: welcome,
		InvitedBy:      inviter.UserID,
		ExpiresAt:      now.Add(s.ttl),
		CreatedAt:      now,
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.audit.LogInvitationCreated(ctx, inviter.UserID, inv.Email, inv.Role)

	if err := s.notifier.InvitationCreated(ctx, inv); err != nil {
		logx.WithContext(ctx).WithError(err).
			WithField("invitation_id", inv.ID).
			Error("failed to notify invitee")
	}

	return inv, nil
}

// Classify looks the token up and classifies it against tenant. Only a
// repository failure other than not-found is returned as an error.
func (s *Service) Classify(ctx context.Context, token string, tenant kernel.TenantSlug) (invitation.Status, *invitation.Invitation, error) {
	if token == "" {
		return invitation.StatusNotFound, nil, nil
	}

	inv, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errx.HasCode(err, invitation.CodeNotFound) {
			return invitation.StatusNotFound, nil, nil
		}
		return "", nil, err
	}

	status := invitation.Classify(inv, tenant, s.now())
	if status != invitation.StatusValid {
		return status, nil, nil
	}
	return status, inv, nil
}

// Redeem consumes token. Only the first call for a token succeeds.
func (s *Service) Redeem(ctx context.Context, token string) error {
	return s.repo.MarkRedeemed(ctx, token, s.now())
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
