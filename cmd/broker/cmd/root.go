// Package cmd - broker CLI commands
package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wonny/mandacaru-broker/internal/pkg/config"
	"github.com/wonny/mandacaru-broker/internal/pkg/logger"
)

const (
	serviceName    = "mandacaru-broker"
	serviceVersion = "1.0.0"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "broker",
	Short: "Mandacaru Broker - stock record service",
	Long: `Mandacaru Broker - stock record service

Usage:
    go run ./cmd/broker [command]

Commands:
    serve                     - HTTP API server
    migrate up|down|version   - schema migrations
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// initConfig loads an explicit env file before config.Load reads the environment
func initConfig() error {
	if cfgFile == "" {
		return nil
	}
	if err := godotenv.Load(cfgFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", cfgFile, err)
	}
	if verbose {
		fmt.Println("Loaded environment from", cfgFile)
	}
	return nil
}

// loadConfig loads configuration and initializes the global logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	if err := logger.Init(logger.Config{
		Level:          level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}
