package usersrv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/iam/user"
	"github.com/riderota/core/pkg/iam/user/userinfra"
	"github.com/riderota/core/pkg/iam/user/usersrv"
	"github.com/riderota/core/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainHasher keeps tests fast; bcrypt is covered in userinfra.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) bool      { return h == "hashed:"+p }

type countingRepo struct {
	user.Repository
	creates int
	err     error
}

func (r *countingRepo) Create(ctx context.Context, u *user.User) error {
	r.creates++
	if r.err != nil {
		return r.err
	}
	return r.Repository.Create(ctx, u)
}

func employeeInvite() *invitation.Invitation {
	return &invitation.Invitation{
		ID:         "inv-1",
		Token:      "tok",
		Email:      " New.Driver@Acme.test ",
		Role:       kernel.RoleEmployee,
		TenantSlug: "acme",
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func TestProvisionIgnoresClientRoleAndTenant(t *testing.T) {
	repo := userinfra.NewMemoryUserRepository()
	p := usersrv.NewProvisioner(repo, plainHasher{})

	u, err := p.Provision(context.Background(), employeeInvite(), user.RegistrationData{
		Name:       "Dana",
		Password:   "s3cret-pass",
		Role:       "SUPERADMIN",
		TenantSlug: "globex",
	})
	require.NoError(t, err)

	assert.Equal(t, kernel.RoleEmployee, u.Role)
	assert.Equal(t, kernel.TenantSlug("acme"), u.TenantSlug)
	assert.Equal(t, "new.driver@acme.test", u.Email)
	assert.Equal(t, "hashed:s3cret-pass", u.PasswordHash)
	assert.Equal(t, user.StatusActive, u.Status)
	assert.NotEmpty(t, u.ID)

	stored, err := repo.FindByID(context.Background(), "acme", u.ID)
	require.NoError(t, err)
	assert.Equal(t, kernel.RoleEmployee, stored.Role)
}

func TestProvisionConflictIsNotRetried(t *testing.T) {
	repo := &countingRepo{Repository: userinfra.NewMemoryUserRepository()}
	p := usersrv.NewProvisioner(repo, plainHasher{})
	data := user.RegistrationData{Name: "Dana", Password: "s3cret-pass"}

	_, err := p.Provision(context.Background(), employeeInvite(), data)
	require.NoError(t, err)

	_, err = p.Provision(context.Background(), employeeInvite(), data)
	require.Error(t, err)
	assert.True(t, errx.HasCode(err, user.CodeIdentityConflict))
	assert.Equal(t, 409, errx.StatusOf(err))
	assert.Equal(t, 2, repo.creates)
}

func TestProvisionWrapsRepositoryFailure(t *testing.T) {
	repo := &countingRepo{Repository: userinfra.NewMemoryUserRepository(), err: errors.New("connection reset")}
	p := usersrv.NewProvisioner(repo, plainHasher{})

	_, err := p.Provision(context.Background(), employeeInvite(), user.RegistrationData{Name: "Dana", Password: "s3cret-pass"})
	require.Error(t, err)
	assert.Equal(t, 500, errx.StatusOf(err))
	assert.Equal(t, 1, repo.creates)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := userinfra.NewMemoryUserRepository()
	p := usersrv.NewProvisioner(repo, plainHasher{})
	a := usersrv.NewAuthenticator(repo, plainHasher{})

	created, err := p.Provision(ctx, employeeInvite(), user.RegistrationData{Name: "Dana", Password: "s3cret-pass"})
	require.NoError(t, err)

	got, err := a.Authenticate(ctx, "acme", "NEW.driver@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	for name, attempt := range map[string][3]string{
		"wrong password": {"acme", "new.driver@acme.test", "nope"},
		"unknown email":  {"acme", "ghost@acme.test", "s3cret-pass"},
		"other tenant":   {"globex", "new.driver@acme.test", "s3cret-pass"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.Authenticate(ctx, kernel.TenantSlug(attempt[0]), attempt[1], attempt[2])
			assert.True(t, errx.HasCode(err, user.CodeInvalidCredentials))
		})
	}
}
