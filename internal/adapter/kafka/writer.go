package kafka

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces lookup events to a Kafka topic.
// It implements lookup.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured lookup topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes ev and writes it synchronously.
func (w *Writer) Publish(ctx context.Context, ev domain.LookupEvent) error {
	msg, err := serializeToMessage(ev)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	w.logger.Debug("lookup event published", "id", ev.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage converts a LookupEvent into a Kafka message.
func serializeToMessage(ev domain.LookupEvent) (kafkago.Message, error) {
	out, err := domain.SerializeLookupEvent(ev)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   out.Key,
		Value: out.Value,
		Headers: []kafkago.Header{
			{Key: "trigger", Value: []byte(out.Headers["trigger"])},
			{Key: "state", Value: []byte(out.Headers["state"])},
			{Key: "completed_at", Value: []byte(out.Headers["completed_at"])},
		},
	}, nil
}
