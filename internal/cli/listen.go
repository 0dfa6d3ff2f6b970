package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	kafkainfra "invoice_dashboard/internal/infrastructure/messaging/kafka"
	"invoice_dashboard/pkg/logger"
)

func NewListenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Apply broadcast route invalidations to a Redis route cache",
		Long: "Apply broadcast route invalidations to the Redis at REDIS_ADDR. Use it for a Redis\n" +
			"that API nodes read from but the writing node does not clear, such as one per region.\n" +
			"Nodes without Redis follow the broadcast inside serve.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.Kafka.Enabled() {
				return fmt.Errorf("KAFKA_BOOTSTRAP_SERVERS is empty")
			}
			if cfg.Redis.Addr == "" {
				return fmt.Errorf("REDIS_ADDR is empty: serve follows invalidations itself when there is no Redis")
			}

			pages, closePages, err := openRouteCache(ctx, cfg.Redis, log)
			if err != nil {
				return err
			}
			defer closePages()

			consumer, err := kafkainfra.NewInvalidationConsumer(cfg.Kafka, cfg.Kafka.ConsumerGroup, pages, log)
			if err != nil {
				return err
			}
			defer consumer.Close()

			log.Info("listening for route invalidations",
				logger.String("topic", cfg.Kafka.InvalidationTopic),
				logger.String("group", cfg.Kafka.ConsumerGroup),
			)
			return consumer.Start(ctx)
		},
	}
}
