// Package cmd holds the inkpost command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inkpost/config"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:          "inkpost",
	Short:        "inkpost blogging API",
	Long:         `REST API for composing, reading and liking blog posts.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()

		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger = newLogger(cfg, os.Stderr)
		if envErr != nil {
			logger.Debug().Err(envErr).Msg("no .env file loaded")
		}
		return nil
	},
	RunE: runServe,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
