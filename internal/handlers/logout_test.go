package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/handlers"
	"github.com/sbilibin2017/gw-accounts/internal/sessions"
	"github.com/stretchr/testify/assert"
)

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("clears the session and redirects", func(t *testing.T) {
		mockSess := handlers.NewMockSessionManager(ctrl)

		session := &sessions.Session{ID: uuid.New(), AccountID: uuid.New()}
		mockSess.EXPECT().Current(gomock.Any(), gomock.Any()).Return(session, nil)
		mockSess.EXPECT().Clear(gomock.Any(), gomock.Any(), session).Return(nil)

		handler := handlers.NewLogoutHandler(mockSess)

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("works for anonymous clients", func(t *testing.T) {
		mockSess := handlers.NewMockSessionManager(ctrl)

		mockSess.EXPECT().Current(gomock.Any(), gomock.Any()).Return(nil, nil)
		mockSess.EXPECT().Clear(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil)

		handler := handlers.NewLogoutHandler(mockSess)

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("clear failure returns 500", func(t *testing.T) {
		mockSess := handlers.NewMockSessionManager(ctrl)

		mockSess.EXPECT().Current(gomock.Any(), gomock.Any()).Return(nil, nil)
		mockSess.EXPECT().Clear(gomock.Any(), gomock.Any(), gomock.Nil()).Return(errors.New("redis down"))

		handler := handlers.NewLogoutHandler(mockSess)

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
