package invitation_test

import (
	"testing"
	"time"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/kernel"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func acmeInvite(expiresAt time.Time) *invitation.Invitation {
	return &invitation.Invitation{
		Token:      "tok",
		Email:      "driver@acme.test",
		Role:       "EMPLOYEE",
		TenantSlug: "acme",
		ExpiresAt:  expiresAt,
	}
}

func TestClassify(t *testing.T) {
	fresh := acmeInvite(now.Add(time.Hour))
	stale := acmeInvite(now.Add(-time.Hour))

	tests := []struct {
		name   string
		inv    *invitation.Invitation
		tenant string
		want   invitation.Status
	}{
		{"valid", fresh, "acme", invitation.StatusValid},
		{"expired", stale, "acme", invitation.StatusExpired},
		{"wrong tenant fresh", fresh, "other", invitation.StatusTenantMismatch},
		{"wrong tenant expired", stale, "other", invitation.StatusTenantMismatch},
		{"missing", nil, "acme", invitation.StatusNotFound},
		{"expires exactly now", acmeInvite(now), "acme", invitation.StatusValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invitation.Classify(tt.inv, kernel.TenantSlug(tt.tenant), now))
		})
	}
}

func TestPageFor(t *testing.T) {
	assert.Equal(t, "invite-expired", invitation.PageFor(invitation.StatusExpired).Name)
	assert.Equal(t, 410, invitation.PageFor(invitation.StatusExpired).HTTPStatus)
	assert.Equal(t, "invite-wrong-tenant", invitation.PageFor(invitation.StatusTenantMismatch).Name)
	assert.Equal(t, 403, invitation.PageFor(invitation.StatusTenantMismatch).HTTPStatus)
	assert.Equal(t, "invite-invalid", invitation.PageFor(invitation.StatusNotFound).Name)
	assert.Equal(t, "invite-invalid", invitation.PageFor("SOMETHING_ELSE").Name)
	assert.Equal(t, "register", invitation.PageFor(invitation.StatusValid).Name)
}

func TestErrorFor(t *testing.T) {
	assert.Nil(t, invitation.ErrorFor(invitation.StatusValid))

	err := invitation.ErrorFor(invitation.StatusTenantMismatch)
	assert.True(t, errx.HasCode(err, invitation.CodeTenantMismatch))
	assert.Equal(t, "invite-wrong-tenant", err.Details["page"])
	assert.Equal(t, 403, err.HTTPStatus)

	err = invitation.ErrorFor(invitation.StatusExpired)
	assert.Equal(t, 410, err.HTTPStatus)

	err = invitation.ErrorFor(invitation.StatusNotFound)
	assert.Equal(t, "invite-invalid", err.Details["page"])
}
