package rbac

import (
	"log/slog"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Middleware gates HTTP handlers on the permission snapshot carried by the
// request's auth context. It never touches the database: the grants were
// embedded in the token at issue time.
type Middleware struct {
	Logger *slog.Logger
}

// Require ensures the current identity holds every listed permission.
// A request without a verified auth context fails closed with 401; a valid
// identity missing any permission gets 403.
func (m Middleware) Require(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := shared.AuthFromContext(r.Context())
			if ac == nil {
				httpx.RespondError(w, shared.ErrUnauthenticated)
				return
			}
			if !Authorize(ac.Permissions, perms) {
				if m.Logger != nil {
					m.Logger.Info("permission denied",
						slog.String("user", ac.UserID.String()),
						slog.Any("required", perms))
				}
				httpx.RespondError(w, shared.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
