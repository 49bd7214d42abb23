package invitationinfra

import (
	"context"
	"sync"
	"time"

	"github.com/riderota/core/pkg/iam/invitation"
)

// MemoryInvitationRepository keeps invitations in process, keyed by token.
type MemoryInvitationRepository struct {
	mu      sync.Mutex
	byToken map[string]invitation.Invitation
}

func NewMemoryInvitationRepository() *MemoryInvitationRepository {
	return &MemoryInvitationRepository{byToken: make(map[string]invitation.Invitation)}
}

func (r *MemoryInvitationRepository) Save(_ context.Context, inv *invitation.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[inv.Token] = *inv
	return nil
}

func (r *MemoryInvitationRepository) FindByToken(_ context.Context, token string) (*invitation.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.byToken[token]
	if !ok || inv.IsRedeemed() {
		return nil, invitation.ErrNotFound()
	}
	return &inv, nil
}

func (r *MemoryInvitationRepository) MarkRedeemed(_ context.Context, token string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.byToken[token]
	if !ok || inv.IsRedeemed() {
		return invitation.ErrAlreadyRedeemed()
	}
	inv.RedeemedAt = &at
	r.byToken[token] = inv
	return nil
}
