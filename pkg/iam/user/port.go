package user

import (
	"context"

	"github.com/riderota/core/pkg/kernel"
)

// Repository persists users. Email is unique per tenant.
type Repository interface {
	// Create fails with ErrIdentityConflict when the tenant already has a
	// user with that email.
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, tenant kernel.TenantSlug, email string) (*User, error)
	FindByID(ctx context.Context, tenant kernel.TenantSlug, id kernel.UserID) (*User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
