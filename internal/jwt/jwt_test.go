package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	j := New("test-secret", time.Minute)

	sessionID := uuid.New()
	ctx := context.Background()

	token, err := j.Generate(ctx, sessionID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := j.GetSessionID(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, parsed)
}

func TestJWT_GetSessionID_InvalidToken(t *testing.T) {
	j := New("test-secret", time.Minute)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := j.GetSessionID(ctx, tt.token)
			assert.Error(t, err)
			assert.Equal(t, uuid.Nil, parsed)
		})
	}
}

func TestJWT_GetSessionID_WrongSecret(t *testing.T) {
	ctx := context.Background()

	token, err := New("secret-a", time.Minute).Generate(ctx, uuid.New())
	require.NoError(t, err)

	parsed, err := New("secret-b", time.Minute).GetSessionID(ctx, token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestJWT_GetSessionID_Expired(t *testing.T) {
	ctx := context.Background()

	j := New("test-secret", -time.Minute)
	token, err := j.Generate(ctx, uuid.New())
	require.NoError(t, err)

	parsed, err := j.GetSessionID(ctx, token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}
