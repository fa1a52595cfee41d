package shared

import (
	"context"

	"github.com/google/uuid"
)

// AuthContext is the request-scoped identity reconstructed from a verified
// access token. It carries the permission snapshot embedded at issue time
// and holds no reference back to the database.
type AuthContext struct {
	UserID      uuid.UUID
	Email       string
	Permissions []string
}

// HasPermission reports whether the context's snapshot contains perm.
func (a *AuthContext) HasPermission(perm string) bool {
	if a == nil {
		return false
	}
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

type authContextKey struct{}

// ContextWithAuth stores the auth context for the current request.
func ContextWithAuth(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, ac)
}

// AuthFromContext extracts the auth context, nil when the request never
// passed token verification.
func AuthFromContext(ctx context.Context) *AuthContext {
	ac, _ := ctx.Value(authContextKey{}).(*AuthContext)
	return ac
}
