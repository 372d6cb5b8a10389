// Package main provides the shootout command line tool.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/shootout-odds/internal/config"
	"github.com/yourusername/shootout-odds/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shootout",
	Short: "Three-point contest odds engine",
	Long: `Estimates each participant's chance of winning a three-point contest by
simulating the qualifying round and the final many times over.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(newSimulateCmd(), newRoundCmd(), newWatchCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if err := config.LoadSecretsFromAWS(cmd.Context(), cfg); err != nil {
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		return err
	}

	log = logger.NewLogger(cfg.App.LogLevel)
	log.WithFields(logrus.Fields{
		"version":     Version,
		"commit":      GitCommit,
		"environment": cfg.App.Environment,
	}).Debug("Configuration loaded")
	return nil
}

// resolveSeed picks a clock seed for 0 so every random stream in a run shares it
func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return uint64(time.Now().UnixNano())
	}
	return seed
}
