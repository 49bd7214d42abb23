package validatex_test

import (
	"testing"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/validatex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,invitable_role"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := validatex.New()

	err := v.Struct(inviteRequest{Email: "not-an-email", Role: "SUPERADMIN"})
	require.Error(t, err)
	require.True(t, errx.HasCode(err, validatex.CodeInvalid))
	assert.Equal(t, 400, errx.StatusOf(err))

	fields := err.(*errx.Error).Details["fields"].(map[string]string)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "role")
}

func TestStructAcceptsInvitableRoles(t *testing.T) {
	v := validatex.New()

	for _, role := range []string{"ADMIN", "employee", "Driver"} {
		assert.NoError(t, v.Struct(inviteRequest{Email: "a@b.co", Role: role}), role)
	}
}
