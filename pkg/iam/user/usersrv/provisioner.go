package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
)

// Provisioner creates identities from invitations.
type Provisioner struct {
	repo   user.Repository
	hasher user.PasswordHasher
	now    func() time.Time
}

func NewProvisioner(repo user.Repository, hasher user.PasswordHasher) *Provisioner {
	return &Provisioner{repo: repo, hasher: hasher, now: time.Now}
}

// Provision creates the user an invitation describes. The invitation must
// have classified as valid just before; it is not checked again. Email,
// role and tenant come from inv, never from data. A repository failure is
// returned as is and the call is never retried.
func (p *Provisioner) Provision(ctx context.Context, inv *invitation.Invitation, data user.RegistrationData) (*user.User, error) {
	if inv == nil {
		return nil, invitation.ErrNotFound()
	}

	hash, err := p.hasher.Hash(data.Password)
	if err != nil {
		return nil, err
	}

	now := p.now()
	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        invitation.NormalizeEmail(inv.Email),
		Name:         strings.TrimSpace(data.Name),
		PasswordHash: hash,
		Role:         inv.Role,
		TenantSlug:   inv.TenantSlug,
		Status:       user.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if (data.Role != "" && !strings.EqualFold(data.Role, inv.Role.String())) ||
		(data.TenantSlug != "" && data.TenantSlug != inv.TenantSlug.String()) {
		logx.WithContext(ctx).WithFields(logx.Fields{
			"invitation_id":    inv.ID,
			"submitted_role":   data.Role,
			"submitted_tenant": data.TenantSlug,
		}).Warn("ignoring client supplied role or tenant during registration")
	}

	if err := p.repo.Create(ctx, u); err != nil {
		if errx.HasCode(err, user.CodeIdentityConflict) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to provision user", errx.TypeInternal)
	}

	return u, nil
}
