package render_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sbilibin2017/gw-accounts/internal/forms"
	"github.com/sbilibin2017/gw-accounts/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	views, err := render.New()
	require.NoError(t, err)

	t.Run("writes the view with the given status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		views.Render(rec, http.StatusOK, "register.html", map[string]any{
			"Form":   &forms.RegistrationForm{Username: "alice"},
			"Errors": forms.NewErrors(),
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `value="alice"`)
	})

	t.Run("renders field errors", func(t *testing.T) {
		verrs := forms.NewErrors()
		verrs.AddField("email", "Enter a valid email address.")

		rec := httptest.NewRecorder()
		views.Render(rec, http.StatusOK, "register.html", map[string]any{
			"Form":   &forms.RegistrationForm{},
			"Errors": verrs,
		})

		assert.Contains(t, rec.Body.String(), "Enter a valid email address.")
	})

	t.Run("unknown view yields 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		views.Render(rec, http.StatusOK, "missing.html", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
