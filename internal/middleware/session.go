package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/autoshop/console/internal/models"
)

type ctxKey string

const sessionUserKey ctxKey = "sessionUser"

// SessionSource exposes the current session, if one is established.
type SessionSource interface {
	Session() (models.Session, bool)
}

// SessionAuth enforces bearer-token authentication against the single
// active session.
//
// The /api/login endpoint is excluded so a session can be established in the
// first place. Every other request must carry "Authorization: Bearer <token>"
// matching the current session's token; on success the session user is
// stored in the request context for downstream handlers.
func SessionAuth(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/login" {
				// Allow login without a session
				next.ServeHTTP(w, r)
				return
			}

			session, ok := sessions.Session()
			if !ok {
				http.Error(w, "not logged in", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || token != session.Token {
				http.Error(w, "invalid session token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, session.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionUserFromContext extracts the authenticated user from the request
// context. The second return value is false outside an authenticated request.
func SessionUserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(sessionUserKey).(models.User)
	return u, ok
}
