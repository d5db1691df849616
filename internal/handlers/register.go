package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/forms"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/sbilibin2017/gw-accounts/internal/sessions"
)

// MsgRegistered is the flash queued after a successful registration.
const MsgRegistered = "Registration successful. You can now log in."

// Registerer defines the interface that the registration service must
// implement.
type Registerer interface {
	Register(ctx context.Context, form *forms.RegistrationForm) (*models.AccountDB, *forms.Errors, error)
}

// SessionManager defines the session operations the handlers need.
type SessionManager interface {
	Current(ctx context.Context, r *http.Request) (*sessions.Session, error)
	Bind(ctx context.Context, w http.ResponseWriter, s *sessions.Session, accountID uuid.UUID) (*sessions.Session, error)
	Clear(ctx context.Context, w http.ResponseWriter, s *sessions.Session) error
	AddFlash(ctx context.Context, w http.ResponseWriter, s *sessions.Session, message string) (*sessions.Session, error)
	PopFlashes(ctx context.Context, s *sessions.Session) ([]string, error)
}

// Renderer renders a named view with a context mapping.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data map[string]any)
}

// NewRegisterHandler returns an HTTP handler for the registration page.
// GET renders an empty form; POST validates the submission, creates the
// account, queues a success flash and redirects to the login page. A failed
// validation re-renders the form with its errors.
func NewRegisterHandler(svc Registerer, sess SessionManager, views Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.Method == http.MethodGet {
			views.Render(w, http.StatusOK, "register.html", map[string]any{
				"Form":   &forms.RegistrationForm{},
				"Errors": forms.NewErrors(),
			})
			return
		}

		form, err := forms.ParseRegistrationForm(r)
		if err != nil {
			logger.Log.Errorw("failed to parse registration form", "err", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		_, verrs, err := svc.Register(ctx, form)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if !verrs.Empty() {
			views.Render(w, http.StatusOK, "register.html", map[string]any{
				"Form":   form,
				"Errors": verrs,
			})
			return
		}

		// the account exists at this point; a flash failure only costs the message
		session, err := sess.Current(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to resolve session", "err", err)
		}
		if _, err := sess.AddFlash(ctx, w, session, MsgRegistered); err != nil {
			logger.Log.Errorw("failed to queue flash message", "err", err)
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
