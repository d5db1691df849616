package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/sessions"
)

// SessionReader resolves the request's session.
type SessionReader interface {
	Current(ctx context.Context, r *http.Request) (*sessions.Session, error)
}

// SessionAuthMiddleware returns a middleware that redirects anonymous
// requests to the login page and stores the authenticated session in the
// request context.
func SessionAuthMiddleware(reader SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			session, err := reader.Current(ctx, r)
			if err != nil {
				logger.Log.Errorw("failed to resolve session", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if !session.Authenticated() {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSessionToContext(ctx, session)))
		})
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var sessionKey = contextKey{}

// SetSessionToContext stores the session in the context
func SetSessionToContext(ctx context.Context, s *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSessionFromContext retrieves the session from the context. Returns nil
// if not present.
func GetSessionFromContext(ctx context.Context) *sessions.Session {
	s, _ := ctx.Value(sessionKey).(*sessions.Session)
	return s
}
