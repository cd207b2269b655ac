package middleware

// ContextKey is the type of request context keys set by this package.
type ContextKey string

const (
	// AdminClaimsCtxKey holds the *auth.Claims of an authenticated admin.
	AdminClaimsCtxKey = ContextKey("admin_claims")

	RequestIDCtxKey = ContextKey("request_id")
)
