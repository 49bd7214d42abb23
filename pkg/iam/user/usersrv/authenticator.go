package usersrv

import (
	"context"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/kernel"
)

// Authenticator checks email and password for a tenant.
type Authenticator struct {
	repo   user.Repository
	hasher user.PasswordHasher

	// dummyHash is compared on a lookup miss so that an unknown email
	// costs about as much as a wrong password.
	dummyHash string
}

func NewAuthenticator(repo user.Repository, hasher user.PasswordHasher) *Authenticator {
	dummy, _ := hasher.Hash("unknown-account")
	return &Authenticator{repo: repo, hasher: hasher, dummyHash: dummy}
}

// Authenticate returns ErrInvalidCredentials for an unknown email, a wrong
// password and a disabled account alike.
func (a *Authenticator) Authenticate(ctx context.Context, tenant kernel.TenantSlug, email, password string) (*user.User, error) {
	u, err := a.repo.FindByEmail(ctx, tenant, invitation.NormalizeEmail(email))
	if err != nil {
		if errx.HasCode(err, user.CodeNotFound) {
			a.hasher.Compare(a.dummyHash, password)
			return nil, user.ErrInvalidCredentials()
		}
		return nil, err
	}

	if !a.hasher.Compare(u.PasswordHash, password) || !u.IsActive() {
		return nil, user.ErrInvalidCredentials()
	}
	return u, nil
}

// Get returns a user of tenant by id.
func (a *Authenticator) Get(ctx context.Context, tenant kernel.TenantSlug, id kernel.UserID) (*user.User, error) {
	return a.repo.FindByID(ctx, tenant, id)
}
