package user

import (
	"net/http"
	"time"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/kernel"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusDisabled Status = "DISABLED"
)

// User is an identity inside exactly one tenant. Role and tenant are copied
// from the invitation that created it.
type User struct {
	ID           kernel.UserID     `db:"id" json:"id"`
	Email        string            `db:"email" json:"email"`
	Name         string            `db:"name" json:"name"`
	PasswordHash string            `db:"password_hash" json:"-"`
	Role         kernel.Role       `db:"role" json:"role"`
	TenantSlug   kernel.TenantSlug `db:"tenant_slug" json:"tenant_slug"`
	Status       Status            `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// RegistrationData is what the registering client submits. Role and
// TenantSlug are accepted on the wire and never read by provisioning.
type RegistrationData struct {
	Name       string `json:"name" validate:"required,max=120"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Role       string `json:"role,omitempty"`
	TenantSlug string `json:"tenant_slug,omitempty"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID         kernel.UserID     `json:"id"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Role       kernel.Role       `json:"role"`
	TenantSlug kernel.TenantSlug `json:"tenant_slug"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		TenantSlug: u.TenantSlug,
	}
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("USER")

var (
	CodeIdentityConflict   = ErrRegistry.Register("IDENTITY_CONFLICT", errx.TypeConflict, http.StatusConflict, "An account with this email already exists")
	CodeNotFound           = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid email or password")
)

func ErrIdentityConflict() *errx.Error {
	return ErrRegistry.New(CodeIdentityConflict)
}

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}
