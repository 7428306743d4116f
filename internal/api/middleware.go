package api

import (
	"context"
	"net/http"
	"time"

	"eternavista/internal/user"
	"eternavista/pkg/config"
	"eternavista/pkg/session"
)

// UserSource is the single lookup the session middleware needs.
type UserSource interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

// SessionAuth resolves the caller's identity from the session cookie.
//
// Contract:
// - A valid cookie yields exactly one user lookup by primary key; the result is
//   cached in the request context for the rest of the request.
// - A missing or invalid cookie leaves the identity nil. SessionAuth never
//   rejects a request by itself; RequireAuth/RequireRole do that.
func SessionAuth(cfg config.Config, users UserSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cfg.Session.CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := session.VerifyToken(cfg.Session.Secret, c.Value, time.Now())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.FindByID(r.Context(), userID)
			if err != nil {
				// Stale cookie for a deleted user.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), u)))
		})
	}
}

// RequireAuth gates handlers that touch non-public data.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == nil {
			WriteError(w, Unauthenticated("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates handlers to a single role.
func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := IdentityFromContext(r.Context())
			if u == nil {
				WriteError(w, Unauthenticated("authentication required"))
				return
			}
			if u.Role != role {
				WriteError(w, Forbidden("insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
