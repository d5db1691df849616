package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// RegisteredEvent is the payload published when an account is created.
type RegisteredEvent struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher publishes account lifecycle events.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a Publisher. A nil writer disables publishing.
func NewPublisher(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

// PublishRegistered publishes a registration event. Failures are logged and
// swallowed: event delivery never blocks the registration response.
func (p *Publisher) PublishRegistered(ctx context.Context, account *models.AccountDB) {
	if p.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "account_id", account.AccountID)
		return
	}

	event := RegisteredEvent{
		AccountID: account.AccountID.String(),
		Username:  account.Username,
		Email:     account.Email,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal registration event", "account_id", account.AccountID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.AccountID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish registration event", "account_id", account.AccountID, "error", err)
	} else {
		logger.Log.Infow("Registration event published", "account_id", account.AccountID, "username", account.Username)
	}
}
