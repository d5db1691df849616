package storage

import (
	"context"
	"testing"

	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("custom endpoint", func(t *testing.T) {
		store, err := New(context.Background(), "http://localhost:9000", "us-east-1", "test-bucket", "access", "secret")
		require.NoError(t, err)
		assert.NotNil(t, store.client)
		assert.Equal(t, "test-bucket", store.bucket)
	})

	t.Run("default endpoint", func(t *testing.T) {
		store, err := New(context.Background(), "", "us-east-1", "test-bucket", "access", "secret")
		require.NoError(t, err)
		assert.NotNil(t, store.client)
	})
}

func TestS3Storage_Placeholder(t *testing.T) {
	store := &S3Storage{bucket: "test-bucket"}
	assert.Equal(t, models.DefaultProfilePicture, store.Placeholder())
}
