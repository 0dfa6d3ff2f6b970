package cli

import (
	"github.com/spf13/cobra"

	"invoice_dashboard/pkg/logger"
)

func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the invoices table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			store, closeStore, err := openStore(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("invoices schema ready", logger.String("db_driver", cfg.DB.Driver))
			return nil
		},
	}
}
