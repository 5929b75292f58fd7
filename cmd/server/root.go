package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/config"
	"github.com/jengzang/astro-backend-go/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "astro-server",
	Short:         "Natal chart calculation service",
	Long:          "astro-server computes natal charts, analyzes them and serves the results over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ./astro.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "override log.level")
}

// setup loads configuration and builds the logger for a subcommand.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
