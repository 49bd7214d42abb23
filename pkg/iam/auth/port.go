package auth

import (
	"context"

	"github.com/riderota/core/pkg/kernel"
)

// TokenCodec signs and verifies the two credential classes.
type TokenCodec interface {
	Issue(claim Claim) (CredentialPair, error)
	VerifyAccess(token string) (Claim, error)
	VerifyRefresh(token string) (Claim, error)
}

// AuditService records authentication events.
type AuditService interface {
	LogLoginAttempt(ctx context.Context, email string, success bool, ip string)
	LogLogout(ctx context.Context, userID kernel.UserID, ip string)
	LogTokenRotation(ctx context.Context, userID kernel.UserID, ip string)
	LogAccountCreated(ctx context.Context, userID kernel.UserID, role kernel.Role, ip string)
	LogInvitationCreated(ctx context.Context, inviter kernel.UserID, email string, role kernel.Role)
}
