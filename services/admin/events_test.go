package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewEventPublisher(t *testing.T) {
	t.Run("sem brokers usa noop", func(t *testing.T) {
		// Act
		publisher, err := newEventPublisher(Config{}, zap.NewNop())

		// Assert
		require.NoError(t, err)
		assert.IsType(t, noopPublisher{}, publisher)
		assert.NoError(t, publisher.PublishStatusChanged(context.Background(), TransactionStatusChanged{TransactionID: "t1"}))
		publisher.Close()
	})

	t.Run("com brokers usa kafka", func(t *testing.T) {
		// Arrange
		cfg := Config{KafkaBrokers: []string{"127.0.0.1:19092"}, KafkaTopic: "sporton.test"}

		// Act
		publisher, err := newEventPublisher(cfg, zap.NewNop())

		// Assert
		require.NoError(t, err)
		kafka, ok := publisher.(*KafkaPublisher)
		require.True(t, ok)
		assert.Equal(t, "sporton.test", kafka.topic)
		publisher.Close()
	})
}
