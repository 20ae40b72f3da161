package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// EventPublisher publica eventos de domínio após o commit
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event TransactionStatusChanged) error
	Close()
}

// noopPublisher é usado quando nenhum broker está configurado
type noopPublisher struct{}

func (noopPublisher) PublishStatusChanged(context.Context, TransactionStatusChanged) error {
	return nil
}

func (noopPublisher) Close() {}

// KafkaPublisher publica eventos num tópico Kafka, chaveados pelo id da transação
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher cria o cliente franz-go para os brokers informados
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, event TransactionStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.TransactionID),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce event: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("topic", p.topic),
		zap.String("transaction_id", event.TransactionID),
		zap.String("status", string(event.Status)))
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

func newEventPublisher(cfg Config, logger *zap.Logger) (EventPublisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, status events disabled")
		return noopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}
