package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"invoice_dashboard/internal/application/revalidate"
	"invoice_dashboard/internal/config"
	"invoice_dashboard/internal/infrastructure/encoding/avro"
	"invoice_dashboard/pkg/logger"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

// InvalidationConsumer applies broadcast invalidations to a local target.
type InvalidationConsumer struct {
	reader messageReader
	codec  *avro.RouteInvalidatedCodec
	target revalidate.Target
	logger logger.Logger
}

// NewInvalidationConsumer reads the invalidation topic as groupID. Every cache
// that must see every event needs its own group. A new group starts at the
// newest offset: a cache that just started holds nothing older to drop.
func NewInvalidationConsumer(cfg config.KafkaConfig, groupID string, target revalidate.Target, log logger.Logger) (*InvalidationConsumer, error) {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     groupID,
		Topic:       cfg.InvalidationTopic,
		StartOffset: kafkago.LastOffset,
		MinBytes:    1,
		MaxBytes:    1e6,
	})
	return newInvalidationConsumer(reader, target, log)
}

func newInvalidationConsumer(reader messageReader, target revalidate.Target, log logger.Logger) (*InvalidationConsumer, error) {
	codec, err := avro.NewRouteInvalidatedCodec()
	if err != nil {
		return nil, err
	}
	return &InvalidationConsumer{
		reader: reader,
		codec:  codec,
		target: target,
		logger: log,
	}, nil
}

// Start blocks until ctx is cancelled or the reader fails.
// Undecodable messages are skipped; a failing target is logged and the loop goes on.
func (c *InvalidationConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		ev, err := c.codec.Decode(msg.Value)
		if err != nil {
			c.logger.Warn("skipping undecodable invalidation",
				logger.Int64("offset", msg.Offset),
				logger.Error(err),
			)
			continue
		}

		if err := c.target.Invalidate(ctx, ev.Path); err != nil {
			c.logger.Error("apply invalidation failed", logger.String("path", ev.Path), logger.Error(err))
			continue
		}
		c.logger.Debug("invalidation applied",
			logger.String("path", ev.Path),
			logger.String("source", ev.Source),
		)
	}
}

func (c *InvalidationConsumer) Close() {
	_ = c.reader.Close()
}
