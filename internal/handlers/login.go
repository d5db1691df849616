package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-accounts/internal/forms"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/services"
)

// MsgBadCredentials is the single error shown for any failed login. It does
// not distinguish an unknown username from a wrong password.
const MsgBadCredentials = "Please enter a correct username and password."

// Authenticator defines the interface that the login service must implement.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.AccountDB, error)
}

// NewLoginHandler returns an HTTP handler for the login page. GET renders
// the form along with any queued flash messages; POST authenticates and, on
// success, binds the session to the account and redirects to the profile.
func NewLoginHandler(svc Authenticator, sess SessionManager, views Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method == http.MethodGet {
			session, err := sess.Current(ctx, r)
			if err != nil {
				logger.Log.Errorw("failed to resolve session", "err", err)
			}
			flashes, err := sess.PopFlashes(ctx, session)
			if err != nil {
				logger.Log.Errorw("failed to read flash messages", "err", err)
			}
			views.Render(w, http.StatusOK, "login.html", map[string]any{
				"Form":    &forms.LoginForm{},
				"Errors":  forms.NewErrors(),
				"Flashes": flashes,
			})
			return
		}

		form, err := forms.ParseLoginForm(r)
		if err != nil {
			logger.Log.Errorw("failed to parse login form", "err", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		if verrs := form.Validate(); !verrs.Empty() {
			views.Render(w, http.StatusOK, "login.html", map[string]any{
				"Form":   form,
				"Errors": verrs,
			})
			return
		}

		account, err := svc.Authenticate(ctx, form.Username, form.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				verrs := forms.NewErrors()
				verrs.AddNonField(MsgBadCredentials)
				views.Render(w, http.StatusOK, "login.html", map[string]any{
					"Form":   form,
					"Errors": verrs,
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		session, err := sess.Current(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to resolve session", "err", err)
		}
		if _, err := sess.Bind(ctx, w, session, account.AccountID); err != nil {
			logger.Log.Errorw("failed to bind session", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/profile", http.StatusSeeOther)
	}
}
