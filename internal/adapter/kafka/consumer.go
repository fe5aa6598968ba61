// Package kafka ingests storm track updates from a Kafka topic into the
// session store. Each message carries one full storm as JSON; undecodable or
// hard-invalid messages are logged, counted, and committed so a poison
// record never wedges the consumer group.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/storm-track-viz/internal/config"
	"github.com/couchcryptid/storm-track-viz/internal/domain"
	"github.com/couchcryptid/storm-track-viz/internal/observability"
	"github.com/couchcryptid/storm-track-viz/internal/store"
)

// Consumer reads storm updates from Kafka and upserts them into the store.
type Consumer struct {
	reader  *kafkago.Reader
	store   *store.Store
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewConsumer creates a consumer-group reader for the configured topic.
func NewConsumer(cfg *config.Config, st *store.Store, logger *slog.Logger,
	metrics *observability.Metrics) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: cfg.KafkaGroupID,
		Topic:   cfg.KafkaTopic,
	})
	return &Consumer{reader: reader, store: st, logger: logger, metrics: metrics}
}

// Run consumes until the context is cancelled. Processing failures skip the
// message; only fetch and commit errors stop the loop.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("kafka consumer starting", "topic", c.reader.Config().Topic)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.processMessage(msg.Value); err != nil {
			c.metrics.IngestErrors.Inc()
			c.logger.Warn("skipping storm update",
				"offset", msg.Offset, "error", err)
		} else {
			c.metrics.IngestMessages.Inc()
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

// processMessage decodes one storm update and upserts it.
func (c *Consumer) processMessage(value []byte) error {
	var storm domain.Storm
	if err := json.Unmarshal(value, &storm); err != nil {
		return fmt.Errorf("decode storm update: %w", err)
	}
	if err := c.store.Upsert(storm); err != nil {
		return err
	}
	c.logger.Debug("storm updated", "id", storm.ID)
	return nil
}

// Close releases the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
