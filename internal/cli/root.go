package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "invoice-dashboard",
		Short:         "Invoice dashboard form actions",
		Long:          "Serves the create, update and delete invoice actions of the dashboard and keeps the invoice list route fresh.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.EnvFile == "" {
				return nil
			}
			if err := godotenv.Load(opts.EnvFile); err != nil {
				return fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file loaded before the environment is read")

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewListenCommand())

	return cmd
}
