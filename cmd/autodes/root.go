package main

import (
	"fmt"

	"github.com/RodrigoDSVDF/autodes"
	"github.com/spf13/cobra"
)

var (
	cfgDBPath  string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "autodes",
	Short: "Autodes - personal development analytics CLI",
	Long: `Autodes is a CLI for tracking and analyzing personal development metrics.

Log one record per day (study, exercise, sleep, subjective ratings), then let
the engine compute daily scores, trends, correlations, streaks and XP.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDBPath, "db", "", "Path to SQLite database (default: ~/.autodes/autodes.db)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig resolves configuration with flags taking precedence over
// environment variables, which take precedence over defaults.
func loadConfig() autodes.Config {
	cfg := autodes.DefaultConfig()

	env := autodes.ConfigFromEnv()
	if env.DBPath != "" {
		cfg.DBPath = env.DBPath
	}
	if env.CacheTTL != 0 {
		cfg.CacheTTL = env.CacheTTL
	}
	cfg.Debug = env.Debug
	cfg.DebugLogPath = env.DebugLogPath

	if cfgDBPath != "" {
		cfg.DBPath = cfgDBPath
	}

	return cfg
}

// loadAndValidateConfig resolves configuration and fails fast on invalid
// values so commands do not open a half-configured client.
func loadAndValidateConfig() (autodes.Config, error) {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return autodes.Config{}, err
	}
	return cfg, nil
}

// openClient builds a client from the resolved configuration.
func openClient() (*autodes.Client, error) {
	cfg, err := loadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	client, err := autodes.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize client: %w", err)
	}
	return client, nil
}
