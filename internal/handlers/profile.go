package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/services"
)

// ProfileReader defines the account lookup the profile page needs.
type ProfileReader interface {
	Profile(ctx context.Context, accountID uuid.UUID) (*models.AccountDB, error)
}

// NewProfileHandler returns an HTTP handler rendering the authenticated
// account. Anonymous requests are redirected to the login page; the session
// auth middleware normally takes care of that before this handler runs.
func NewProfileHandler(svc ProfileReader, views Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		session := middlewares.GetSessionFromContext(ctx)
		if !session.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		account, err := svc.Profile(ctx, session.AccountID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAccountDoesNotExist):
				// session points at a deleted account
				http.Redirect(w, r, "/login", http.StatusFound)
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		views.Render(w, http.StatusOK, "profile.html", map[string]any{
			"Account": account,
		})
	}
}
