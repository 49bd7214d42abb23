package userinfra

import (
	"context"
	"sync"

	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/kernel"
)

// MemoryUserRepository backs local development without a database.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[kernel.UserID]user.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[kernel.UserID]user.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.TenantSlug == u.TenantSlug && existing.Email == u.Email {
			return user.ErrIdentityConflict().WithDetail("tenant", u.TenantSlug.String())
		}
	}
	if _, ok := r.users[u.ID]; ok {
		return user.ErrIdentityConflict().WithDetail("user_id", u.ID.String())
	}
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, tenant kernel.TenantSlug, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.TenantSlug == tenant && u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound()
}

func (r *MemoryUserRepository) FindByID(_ context.Context, tenant kernel.TenantSlug, id kernel.UserID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.TenantSlug != tenant {
		return nil, user.ErrNotFound().WithDetail("user_id", id.String())
	}
	return &u, nil
}
