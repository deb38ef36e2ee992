// Package kafka publishes run audit events to the configured topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/ankiibott/Forest-fire-prediction/internal/config"
	"github.com/ankiibott/Forest-fire-prediction/internal/domain"
)

// Publisher produces run records to a Kafka topic. It implements the
// dashboard server's RunPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured run event topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishRun serializes and publishes one completed run record.
func (p *Publisher) PublishRun(ctx context.Context, rec domain.RunRecord) error {
	msg, err := serializeToMessage(rec)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a RunRecord into a Kafka message keyed by
// run id.
func serializeToMessage(rec domain.RunRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize run record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.RunID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(rec.Source)},
			{Key: "completed_at", Value: []byte(rec.CompletedAt.Format(time.RFC3339))},
		},
	}, nil
}
