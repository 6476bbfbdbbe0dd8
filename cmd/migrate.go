package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes for the configured store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer s.close(context.Background())

		if err := s.migrate(ctx); err != nil {
			return err
		}
		logger.Info().Str("driver", cfg.StoreDriver).Msg("migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
