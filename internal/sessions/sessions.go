package sessions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
)

// DefaultCookieName is the cookie the signed session token travels in.
const DefaultCookieName = "gw_session"

// Session is the request-scoped view of one client's server-side session.
// AccountID is uuid.Nil while the session is anonymous.
type Session struct {
	ID        uuid.UUID
	AccountID uuid.UUID
}

// Authenticated reports whether the session exists and is bound to an
// account.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccountID != uuid.Nil
}

// Tokener signs and parses the session id that travels in the cookie.
type Tokener interface {
	Generate(ctx context.Context, sessionID uuid.UUID) (string, error)
	GetSessionID(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// Manager stores sessions in Redis keyed by session id and keeps the signed
// id in a cookie on the client. Sessions exist for anonymous visitors too,
// so flash messages survive the redirect after registration.
type Manager struct {
	client *redis.Client
	tokens Tokener
	exp    time.Duration
	cookie string
}

// NewManager creates a session manager with the given session TTL.
func NewManager(client *redis.Client, tokens Tokener, expiration time.Duration, cookieName string) *Manager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Manager{
		client: client,
		tokens: tokens,
		exp:    expiration,
		cookie: cookieName,
	}
}

func (m *Manager) dataKey(id uuid.UUID) string {
	return fmt.Sprintf("session:%s", id)
}

func (m *Manager) flashKey(id uuid.UUID) string {
	return fmt.Sprintf("session:%s:flash", id)
}

// Current resolves the request's session. A missing or invalid cookie, or a
// session id unknown to Redis, yields nil with no error: the client is
// simply anonymous.
func (m *Manager) Current(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookie)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sid, err := m.tokens.GetSessionID(ctx, cookie.Value)
	if err != nil {
		logger.Log.Infow("discarding unparseable session cookie", "err", err)
		return nil, nil
	}

	val, err := m.client.HGet(ctx, m.dataKey(sid), "account_id").Result()
	if errors.Is(err, redis.Nil) {
		// the key may still exist as an anonymous session carrying flashes
		exists, err := m.client.Exists(ctx, m.dataKey(sid), m.flashKey(sid)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, nil
		}
		return &Session{ID: sid}, nil
	}
	if err != nil {
		return nil, err
	}

	accountID, err := uuid.Parse(val)
	if err != nil {
		return nil, err
	}

	return &Session{ID: sid, AccountID: accountID}, nil
}

// Bind rotates the session id, binds the new session to the account and
// drops the pre-login session. The fresh authenticated session is returned.
func (m *Manager) Bind(ctx context.Context, w http.ResponseWriter, s *Session, accountID uuid.UUID) (*Session, error) {
	fresh, err := m.start(ctx, w)
	if err != nil {
		return nil, err
	}

	if err := m.client.HSet(ctx, m.dataKey(fresh.ID), "account_id", accountID.String()).Err(); err != nil {
		return nil, err
	}
	if err := m.client.Expire(ctx, m.dataKey(fresh.ID), m.exp).Err(); err != nil {
		return nil, err
	}

	if s != nil {
		if err := m.drop(ctx, s.ID); err != nil {
			logger.Log.Errorw("failed to drop pre-login session", "session_id", s.ID, "err", err)
		}
	}

	fresh.AccountID = accountID
	return fresh, nil
}

// Clear deletes the server-side session and expires the cookie. Clearing an
// already anonymous client is a no-op.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s != nil {
		if err := m.drop(ctx, s.ID); err != nil {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return nil
}

// AddFlash queues a one-time message on the session, starting an anonymous
// session when the client does not have one yet. The possibly fresh session
// is returned.
func (m *Manager) AddFlash(ctx context.Context, w http.ResponseWriter, s *Session, message string) (*Session, error) {
	if s == nil {
		var err error
		if s, err = m.start(ctx, w); err != nil {
			return nil, err
		}
	}

	if err := m.client.RPush(ctx, m.flashKey(s.ID), message).Err(); err != nil {
		return nil, err
	}
	if err := m.client.Expire(ctx, m.flashKey(s.ID), m.exp).Err(); err != nil {
		return nil, err
	}

	return s, nil
}

// PopFlashes drains and returns the messages queued on the session.
func (m *Manager) PopFlashes(ctx context.Context, s *Session) ([]string, error) {
	if s == nil {
		return nil, nil
	}

	messages, err := m.client.LRange(ctx, m.flashKey(s.ID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}

	if err := m.client.Del(ctx, m.flashKey(s.ID)).Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

// start mints a new session id and sets the signed cookie.
func (m *Manager) start(ctx context.Context, w http.ResponseWriter) (*Session, error) {
	sid := uuid.New()

	token, err := m.tokens.Generate(ctx, sid)
	if err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.exp.Seconds()),
	})

	return &Session{ID: sid}, nil
}

// drop removes the server-side state of one session id.
func (m *Manager) drop(ctx context.Context, id uuid.UUID) error {
	return m.client.Del(ctx, m.dataKey(id), m.flashKey(id)).Err()
}
