package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_PublishRegistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	account := &models.AccountDB{
		AccountID: uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
	}

	t.Run("publishes the event payload", func(t *testing.T) {
		mockWriter := NewMockKafkaWriter(ctrl)

		var captured kafka.Message
		mockWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, msgs ...kafka.Message) error {
				require.Len(t, msgs, 1)
				captured = msgs[0]
				return nil
			})

		NewPublisher(mockWriter).PublishRegistered(context.Background(), account)

		assert.Equal(t, account.AccountID.String(), string(captured.Key))

		var event RegisteredEvent
		require.NoError(t, json.Unmarshal(captured.Value, &event))
		assert.Equal(t, account.AccountID.String(), event.AccountID)
		assert.Equal(t, "alice", event.Username)
		assert.Equal(t, "alice@example.com", event.Email)
		assert.NotZero(t, event.Timestamp)
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		mockWriter := NewMockKafkaWriter(ctrl)

		mockWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
			Return(errors.New("broker unreachable"))

		assert.NotPanics(t, func() {
			NewPublisher(mockWriter).PublishRegistered(context.Background(), account)
		})
	})

	t.Run("nil writer skips publishing", func(t *testing.T) {
		assert.NotPanics(t, func() {
			NewPublisher(nil).PublishRegistered(context.Background(), account)
		})
	})
}
