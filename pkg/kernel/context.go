package kernel

import "context"

// AuthContext is the resolved identity of a request.
type AuthContext struct {
	UserID     UserID     `json:"user_id"`
	TenantSlug TenantSlug `json:"tenant_slug"`
}

func (ac *AuthContext) IsValid() bool {
	return ac != nil && !ac.UserID.IsEmpty() && !ac.TenantSlug.IsEmpty()
}

type ContextKey string

const (
	AuthContextKey ContextKey = "auth_context"
	TenantKey      ContextKey = "tenant"
	UserKey        ContextKey = "user_id"
	RequestIDKey   ContextKey = "request_id"
)

func WithTenant(ctx context.Context, slug TenantSlug) context.Context {
	return context.WithValue(ctx, TenantKey, slug)
}

func TenantFrom(ctx context.Context) (TenantSlug, bool) {
	slug, ok := ctx.Value(TenantKey).(TenantSlug)
	return slug, ok && !slug.IsEmpty()
}

// WithAuth stores ac and its user id in ctx.
func WithAuth(ctx context.Context, ac *AuthContext) context.Context {
	ctx = context.WithValue(ctx, AuthContextKey, ac)
	return context.WithValue(ctx, UserKey, ac.UserID)
}

func AuthFrom(ctx context.Context) (*AuthContext, bool) {
	ac, ok := ctx.Value(AuthContextKey).(*AuthContext)
	return ac, ok && ac.IsValid()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
