package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"invoice_dashboard/internal/application/revalidate"
	"invoice_dashboard/internal/config"
	"invoice_dashboard/internal/infrastructure/encoding/avro"
	"invoice_dashboard/pkg/logger"
)

// recordProducer is the slice of *kgo.Client the producer needs.
type recordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// InvalidationProducer broadcasts route invalidations so other rendering nodes drop their copies.
type InvalidationProducer struct {
	client recordProducer
	codec  *avro.RouteInvalidatedCodec
	topic  string
	source string
	logger logger.Logger
	now    func() time.Time
}

func NewInvalidationProducer(cfg config.KafkaConfig, source string, log logger.Logger) (*InvalidationProducer, error) {
	log.Info("creating kafka producer",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.InvalidationTopic),
	)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.InvalidationTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return newInvalidationProducer(client, cfg.InvalidationTopic, source, log)
}

func newInvalidationProducer(client recordProducer, topic, source string, log logger.Logger) (*InvalidationProducer, error) {
	codec, err := avro.NewRouteInvalidatedCodec()
	if err != nil {
		return nil, err
	}
	return &InvalidationProducer{
		client: client,
		codec:  codec,
		topic:  topic,
		source: source,
		logger: log,
		now:    time.Now,
	}, nil
}

// Invalidate publishes one RouteInvalidated event keyed by path, so events
// for the same route stay ordered on one partition.
func (p *InvalidationProducer) Invalidate(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	payload, err := p.codec.Encode(avro.RouteInvalidated{
		Path:          path,
		InvalidatedAt: p.now(),
		Source:        p.source,
	})
	if err != nil {
		return fmt.Errorf("encode route invalidated: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(path),
		Value:     payload,
		Timestamp: p.now().UTC(),
	}

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.Error("publish route invalidation failed",
			logger.String("topic", p.topic),
			logger.String("path", path),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("route invalidation published", logger.String("path", path))
	return nil
}

func (p *InvalidationProducer) Close(ctx context.Context) error {
	p.logger.Info("closing kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
	return nil
}

var _ revalidate.Target = (*InvalidationProducer)(nil)
