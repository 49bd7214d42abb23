package authinfra

import (
	"context"

	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
)

// LogxAuditService implements auth.AuditService on top of logx. Request id
// and tenant come from the context.
type LogxAuditService struct{}

func NewLogxAuditService() *LogxAuditService {
	return &LogxAuditService{}
}

func (s *LogxAuditService) LogLoginAttempt(ctx context.Context, email string, success bool, ip string) {
	entry := logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "login",
		"email":       email,
		"success":     success,
		"ip":          ip,
	})
	if success {
		entry.Info("Audit: login")
		return
	}
	entry.Warn("Audit: login failed")
}

func (s *LogxAuditService) LogLogout(ctx context.Context, userID kernel.UserID, ip string) {
	logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "logout",
		"subject_id":  userID,
		"ip":          ip,
	}).Info("Audit: logout")
}

func (s *LogxAuditService) LogTokenRotation(ctx context.Context, userID kernel.UserID, ip string) {
	logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "rotation",
		"subject_id":  userID,
		"ip":          ip,
	}).Info("Audit: credential pair rotated")
}

func (s *LogxAuditService) LogAccountCreated(ctx context.Context, userID kernel.UserID, role kernel.Role, ip string) {
	logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "account_created",
		"subject_id":  userID,
		"role":        role,
		"ip":          ip,
	}).Info("Audit: account created")
}

func (s *LogxAuditService) LogInvitationCreated(ctx context.Context, inviter kernel.UserID, email string, role kernel.Role) {
	logx.WithContext(ctx).WithFields(logx.Fields{
		"audit_event": "invitation_created",
		"inviter_id":  inviter,
		"email":       email,
		"role":        role,
	}).Info("Audit: invitation created")
}
