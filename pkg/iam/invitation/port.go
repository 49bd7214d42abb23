package invitation

import (
	"context"
	"time"
)

// Repository persists invitations.
type Repository interface {
	Save(ctx context.Context, inv *Invitation) error

	// FindByToken returns ErrNotFound when no unredeemed invitation has token.
	FindByToken(ctx context.Context, token string) (*Invitation, error)

	// MarkRedeemed fails with ErrAlreadyRedeemed unless it is the first call
	// for token.
	MarkRedeemed(ctx context.Context, token string, at time.Time) error
}

// Notifier tells the invitee about a new invitation.
type Notifier interface {
	InvitationCreated(ctx context.Context, inv *Invitation) error
}
