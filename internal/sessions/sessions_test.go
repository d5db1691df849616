package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-accounts/internal/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *sessions.Manager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	tokens := jwt.New("test-secret", time.Hour)
	return sessions.NewManager(client, tokens, time.Hour, "")
}

// requestWithCookies copies the Set-Cookie headers of a recorded response
// onto a fresh request, the way a browser would on the next page load.
func requestWithCookies(rec *httptest.ResponseRecorder, target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestManager_CurrentAnonymous(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)

	t.Run("no cookie", func(t *testing.T) {
		session, err := manager.Current(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.False(t, session.Authenticated())
	})

	t.Run("tampered cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessions.DefaultCookieName, Value: "not-a-token"})

		session, err := manager.Current(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("valid cookie for an expired session", func(t *testing.T) {
		tokens := jwt.New("test-secret", time.Hour)
		token, err := tokens.Generate(ctx, uuid.New())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessions.DefaultCookieName, Value: token})

		session, err := manager.Current(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}

func TestManager_BindAndCurrent(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)
	accountID := uuid.New()

	rec := httptest.NewRecorder()
	session, err := manager.Bind(ctx, rec, nil, accountID)
	require.NoError(t, err)
	assert.True(t, session.Authenticated())
	assert.Equal(t, accountID, session.AccountID)

	resolved, err := manager.Current(ctx, requestWithCookies(rec, "/profile"))
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, session.ID, resolved.ID)
	assert.Equal(t, accountID, resolved.AccountID)
}

func TestManager_BindRotatesSessionID(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)

	rec := httptest.NewRecorder()
	anon, err := manager.AddFlash(ctx, rec, nil, "hello")
	require.NoError(t, err)

	rec2 := httptest.NewRecorder()
	bound, err := manager.Bind(ctx, rec2, anon, uuid.New())
	require.NoError(t, err)
	assert.NotEqual(t, anon.ID, bound.ID)

	// the pre-login session and its flashes are gone
	flashes, err := manager.PopFlashes(ctx, anon)
	require.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestManager_Flashes(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)

	t.Run("round trip through an anonymous session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		session, err := manager.AddFlash(ctx, rec, nil, "first")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.False(t, session.Authenticated())

		_, err = manager.AddFlash(ctx, rec, session, "second")
		require.NoError(t, err)

		// the cookie set alongside the flash resolves the same session
		resolved, err := manager.Current(ctx, requestWithCookies(rec, "/login"))
		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, session.ID, resolved.ID)

		flashes, err := manager.PopFlashes(ctx, resolved)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, flashes)

		// popping drains the queue
		flashes, err = manager.PopFlashes(ctx, resolved)
		require.NoError(t, err)
		assert.Empty(t, flashes)
	})

	t.Run("nil session yields nothing", func(t *testing.T) {
		flashes, err := manager.PopFlashes(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, flashes)
	})
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	manager := newManager(t)

	rec := httptest.NewRecorder()
	session, err := manager.Bind(ctx, rec, nil, uuid.New())
	require.NoError(t, err)

	clearRec := httptest.NewRecorder()
	require.NoError(t, manager.Clear(ctx, clearRec, session))

	// the cookie is expired on the client
	cookies := clearRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessions.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)

	// and the server-side state is gone
	resolved, err := manager.Current(ctx, requestWithCookies(rec, "/"))
	require.NoError(t, err)
	assert.Nil(t, resolved)

	t.Run("anonymous client is a no-op", func(t *testing.T) {
		rec := httptest.NewRecorder()
		assert.NoError(t, manager.Clear(ctx, rec, nil))
	})
}
