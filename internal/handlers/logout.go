package handlers

import (
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/logger"
)

// NewLogoutHandler returns an HTTP handler that terminates the session and
// redirects to the login page. It works for anonymous clients too, so a
// stale logout link never errors.
func NewLogoutHandler(sess SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session, err := sess.Current(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to resolve session", "err", err)
		}

		if err := sess.Clear(ctx, w, session); err != nil {
			logger.Log.Errorw("failed to clear session", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
