package cmd

import (
	"fmt"

	"github.com/abhisek/pitchdeck/internal/config"
	"github.com/abhisek/pitchdeck/internal/deck"
	"github.com/abhisek/pitchdeck/internal/logging"
	"github.com/abhisek/pitchdeck/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pitchdeck",
	Short: "Terminal slide deck with an AI strategy assistant",
	Long: "Pitchdeck presents a strategy case-study deck in the terminal, with " +
		"animated slide transitions and an assistant panel that answers questions about the company.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		settings = cfg
		return logging.Initialize(cfg.LogLevel, cfg.LogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// settings is the resolved configuration for the running command.
var settings = config.Default()

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/pitchdeck/config.yaml)")
	pf.String("deck", "", "Path to a YAML deck (overrides PITCHDECK_DECK; default is the built-in deck)")
	pf.String("db", "", "Path to SQLite database file (overrides PITCHDECK_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn, error (logging is off when unset)")

	rootCmd.Flags().Bool("fullscreen", false, "Start in fullscreen")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers .env, the config file, PITCHDECK_* variables and
// command-line flags, in increasing priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv()

	if v, _ := cmd.Flags().GetString("deck"); v != "" {
		cfg.Deck = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (flag, then
// PITCHDECK_DB, then config file), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// loadDeck returns the configured deck, or the built-in one.
func loadDeck(path string) (*deck.Deck, error) {
	if path == "" {
		return deck.Default(), nil
	}
	d, err := deck.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	return d, nil
}
