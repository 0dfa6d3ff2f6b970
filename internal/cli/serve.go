package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "invoice_dashboard/internal/application/invoice"
	"invoice_dashboard/internal/application/revalidate"
	ginserver "invoice_dashboard/internal/infrastructure/http/gin"
	kafkainfra "invoice_dashboard/internal/infrastructure/messaging/kafka"
	"invoice_dashboard/internal/infrastructure/metrics"
	"invoice_dashboard/internal/interfaces/http/handler"
	"invoice_dashboard/internal/interfaces/http/router"
	"invoice_dashboard/pkg/logger"
)

func NewServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the invoices table before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, closeStore, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer closeStore()

	if migrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	pages, closePages, err := openRouteCache(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closePages()

	// a shared Redis is already cleared by the node that wrote; an in-process
	// cache only learns about other nodes' writes from the broadcast
	if cfg.Kafka.Enabled() && cfg.Redis.Addr == "" {
		stopFollowing, err := followInvalidations(ctx, cfg.Kafka, pages, log)
		if err != nil {
			return err
		}
		defer stopFollowing()
	}

	targets := []revalidate.Target{pages}
	if cfg.Kafka.Enabled() {
		producer, err := kafkainfra.NewInvalidationProducer(cfg.Kafka, cfg.App.Name, log)
		if err != nil {
			return err
		}
		defer producer.Close(context.Background())
		targets = append(targets, producer)
	}

	revalidator := revalidate.NewService(log, targets...)
	invoiceService := app.NewService(store, revalidator, log,
		app.WithRecorder(metrics.NewMutationRecorder()),
	)

	engine := ginserver.NewEngine(cfg.App.Env)
	router.RegisterRoutes(engine, handler.NewInvoiceHandler(invoiceService, pages, log), log)

	log.Info("http server starting",
		logger.String("addr", cfg.Server.Address()),
		logger.String("db_driver", cfg.DB.Driver),
		logger.Bool("broadcast", cfg.Kafka.Enabled()),
	)
	if err := ginserver.NewServer(cfg.Server, engine).Run(ctx); err != nil {
		log.Error("server run failed", logger.Error(err))
		return err
	}
	log.Info("http server stopped")
	return nil
}
