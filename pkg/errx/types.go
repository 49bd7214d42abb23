package errx

// Type groups errors by how a caller is expected to react to them.
type Type string

const (
	TypeInternal      Type = "INTERNAL"
	TypeValidation    Type = "VALIDATION"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeForbidden     Type = "FORBIDDEN"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeGone          Type = "GONE"
	TypeExternal      Type = "EXTERNAL"
	TypeConfiguration Type = "CONFIGURATION"
)

func (t Type) String() string {
	return string(t)
}

// status is the HTTP status suggested for an error of this type when no
// registered code overrides it.
func (t Type) status() int {
	switch t {
	case TypeValidation:
		return 400
	case TypeAuthorization:
		return 401
	case TypeForbidden:
		return 403
	case TypeNotFound:
		return 404
	case TypeConflict:
		return 409
	case TypeGone:
		return 410
	case TypeExternal:
		return 502
	default:
		return 500
	}
}

// Internal creates an internal server error
func Internal(message string) *Error { return New(message, TypeInternal) }

// Validation creates a validation error
func Validation(message string) *Error { return New(message, TypeValidation) }

// NotFound creates a not found error
func NotFound(message string) *Error { return New(message, TypeNotFound) }

// Unauthorized creates an authentication error
func Unauthorized(message string) *Error { return New(message, TypeAuthorization) }

// Conflict creates a conflict error
func Conflict(message string) *Error { return New(message, TypeConflict) }
