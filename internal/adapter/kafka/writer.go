package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/meteorite-map/internal/config"
	"github.com/couchcryptid/meteorite-map/internal/domain"
	"github.com/couchcryptid/meteorite-map/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes plotted impacts to a Kafka topic.
// It implements pipeline.ImpactSink.
type Writer struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the configured impact topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaImpactTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// PublishImpacts writes one message per marker, in draw order, in a single
// WriteMessages call.
func (w *Writer) PublishImpacts(ctx context.Context, markers []domain.Marker) error {
	if len(markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(markers))
	for i := range markers {
		msg, err := serializeToMessage(markers[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write impacts to %s: %w", w.writer.Topic, err)
	}
	w.metrics.ImpactsPublished.Add(float64(len(msgs)))
	w.logger.Info("impacts published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Marker into a Kafka message keyed by marker ID.
func serializeToMessage(m domain.Marker) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize impact %s: %w", m.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(m.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "recclass", Value: []byte(m.Record.RecClass)},
			{Key: "rendered_at", Value: []byte(m.PlottedAt.Format(time.RFC3339))},
		},
	}, nil
}
