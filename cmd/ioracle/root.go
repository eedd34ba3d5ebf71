package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkuanyshbaev/ioracle-core/internal/config"
	"github.com/dkuanyshbaev/ioracle-core/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ioracle",
	Short: "IOracle runs the I Ching installation",
	Long: `IOracle waits for a read command, samples the sensor into a primary and a
related hexagram, drives pins, sound, fire and LEDs along the way, and
publishes the result to the waiting collaborator.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML configuration file")
}

// loadConfig reads the --config flag, the file it names and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format)
}
