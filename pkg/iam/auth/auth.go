package auth

import (
	"net/http"

	"github.com/riderota/core/pkg/errx"
	"github.com/riderota/core/pkg/kernel"
)

// ============================================================================
// Credential Types
// ============================================================================

// Claim is the identity carried by both halves of a credential pair. It
// holds only identity-bearing fields; registered JWT fields never leak into
// it, so re-signing a Claim always produces fresh timestamps.
type Claim struct {
	SubjectID  kernel.UserID     `json:"subject_id"`
	TenantSlug kernel.TenantSlug `json:"tenant_slug"`
}

func (c Claim) IsValid() bool {
	return !c.SubjectID.IsEmpty() && !c.TenantSlug.IsEmpty()
}

// CredentialPair is what the client holds. Either half may be empty.
type CredentialPair struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeConfiguration         = ErrRegistry.Register("CONFIGURATION", errx.TypeConfiguration, http.StatusInternalServerError, "Token signing is not configured")
	CodeInvalidCredential     = ErrRegistry.Register("INVALID_CREDENTIAL", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid credential")
	CodeUnauthenticated       = ErrRegistry.Register("UNAUTHENTICATED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeTenantMismatch        = ErrRegistry.Register("TENANT_MISMATCH", errx.TypeForbidden, http.StatusForbidden, "Session belongs to a different tenant")
	CodeTokenGenerationFailed = ErrRegistry.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Token generation failed")
)

// ErrConfiguration is fatal and only ever raised while wiring the process.
func ErrConfiguration() *errx.Error {
	return ErrRegistry.New(CodeConfiguration)
}

func ErrInvalidCredential() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredential)
}

func ErrUnauthenticated() *errx.Error {
	return ErrRegistry.New(CodeUnauthenticated)
}

func ErrTenantMismatch() *errx.Error {
	return ErrRegistry.New(CodeTenantMismatch)
}

func ErrTokenGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenGenerationFailed)
}
