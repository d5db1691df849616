package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT signs and parses the session-id tokens carried in the session cookie.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token expiration duration
}

// New creates a new JWT instance
func New(secretKey string, expiration time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		Exp:       expiration,
	}
}

// Generate creates a signed token carrying the given session id.
func (j *JWT) Generate(ctx context.Context, sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID.String(),
		"exp":        time.Now().Add(j.Exp).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetSessionID parses the token string and returns the session id if valid.
func (j *JWT) GetSessionID(ctx context.Context, tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sessionIDStr, ok := claims["session_id"].(string); ok {
			sessionID, err := uuid.Parse(sessionIDStr)
			if err != nil {
				return uuid.Nil, errors.New("invalid session_id format")
			}
			return sessionID, nil
		}
		return uuid.Nil, errors.New("session_id not found in token")
	}
	return uuid.Nil, errors.New("invalid token")
}
