package invitation

import (
	"net/http"
	"strings"
	"time"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/kernel"
)

// ============================================================================
// Entity
// ============================================================================

// Invitation lets one person register into one tenant with one role. The
// tenant is fixed at creation.
type Invitation struct {
	ID             string            `db:"id" json:"id"`
	Token          string            `db:"token" json:"-"`
	Email          string            `db:"email" json:"email"`
	Role           kernel.Role       `db:"role" json:"role"`
	TenantSlug     kernel.TenantSlug `db:"tenant_slug" json:"tenant_slug"`
	WelcomeMessage *string           `db:"welcome_message" json:"welcome_message,omitempty"`
	InvitedBy      kernel.UserID     `db:"invited_by" json:"invited_by"`
	ExpiresAt      time.Time         `db:"expires_at" json:"expires_at"`
	RedeemedAt     *time.Time        `db:"redeemed_at" json:"redeemed_at,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
}

func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

func (i *Invitation) IsRedeemed() bool {
	return i.RedeemedAt != nil
}

// NormalizeEmail is applied to every address before it is stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ============================================================================
// Classification
// ============================================================================

type Status string

const (
	StatusValid          Status = "VALID"
	StatusExpired        Status = "EXPIRED"
	StatusTenantMismatch Status = "TENANT_MISMATCH"
	StatusNotFound       Status = "NOT_FOUND"
)

// Classify decides whether inv may be redeemed under tenant at now. A nil
// inv is NOT_FOUND. Tenant is compared before expiry so a link opened on
// the wrong subdomain reveals nothing about its freshness. The result is
// never cached; every attempt classifies again.
func Classify(inv *Invitation, tenant kernel.TenantSlug, now time.Time) Status {
	switch {
	case inv == nil:
		return StatusNotFound
	case inv.TenantSlug != tenant:
		return StatusTenantMismatch
	case inv.IsExpired(now):
		return StatusExpired
	default:
		return StatusValid
	}
}

// Page is the contract the UI renders for a classification.
type Page struct {
	Name       string `json:"page"`
	HTTPStatus int    `json:"-"`
}

var (
	PageRegister    = Page{Name: "register", HTTPStatus: http.StatusOK}
	PageExpired     = Page{Name: "invite-expired", HTTPStatus: http.StatusGone}
	PageWrongTenant = Page{Name: "invite-wrong-tenant", HTTPStatus: http.StatusForbidden}
	PageInvalid     = Page{Name: "invite-invalid", HTTPStatus: http.StatusNotFound}
)

// PageFor maps a status to its page. Anything unrecognised is invalid.
func PageFor(s Status) Page {
	switch s {
	case StatusValid:
		return PageRegister
	case StatusExpired:
		return PageExpired
	case StatusTenantMismatch:
		return PageWrongTenant
	default:
		return PageInvalid
	}
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("INVITATION")

var (
	CodeNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Invitation not found")
	CodeExpired         = ErrRegistry.Register("EXPIRED", errx.TypeGone, http.StatusGone, "Invitation has expired")
	CodeTenantMismatch  = ErrRegistry.Register("TENANT_MISMATCH", errx.TypeForbidden, http.StatusForbidden, "Invitation belongs to a different organization")
	CodeAlreadyRedeemed = ErrRegistry.Register("ALREADY_REDEEMED", errx.TypeConflict, http.StatusConflict, "Invitation was already used")
	CodeInvalidRole     = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Role cannot be granted by invitation")
)

func ErrNotFound() *errx.Error        { return ErrRegistry.New(CodeNotFound) }
func ErrAlreadyRedeemed() *errx.Error { return ErrRegistry.New(CodeAlreadyRedeemed) }
func ErrInvalidRole() *errx.Error     { return ErrRegistry.New(CodeInvalidRole) }

// ErrorFor turns a non-valid classification into an error carrying its
// page. It returns nil for StatusValid.
func ErrorFor(s Status) *errx.Error {
	var e *errx.Error
	switch s {
	case StatusValid:
		return nil
	case StatusExpired:
		e = ErrRegistry.New(CodeExpired)
	case StatusTenantMismatch:
		e = ErrRegistry.New(CodeTenantMismatch)
	default:
		e = ErrRegistry.New(CodeNotFound)
	}
	return e.WithDetail("state", string(s)).WithDetail("page", PageFor(s).Name)
}
