package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbegin/locofx/internal/config"
	"github.com/cbegin/locofx/internal/logger"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level when set.
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "locofx",
		Short: "Model locomotive lighting and sound controller.",
		Long: `Animates three flickering light zones and, between idle periods, plays a
rotation of sound effects: a melody, a station announcement, an accelerating
chuff and a steam whistle. Lights freeze while a sound plays.`,
		SilenceUsage: true,
	}
)

// Execute runs the locofx CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error, overrides the config file")

	rootCmd.AddCommand(runCmd, renderCmd, initCmd)
}

// loadConfig reads the config file when one is given and applies the log level.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, ok := logger.ParseLogLevel(level)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	logger.SetLevel(lvl)
	logger.DebugKV(ctx, "configuration loaded", "path", configPath, "level", logger.Level().String())

	return cfg, nil
}

var errOutputRequired = errors.New("output path is required")
