// Package config loads pitchdeck settings from config.yaml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = "pitchdeck"
	configFileName = "config.yaml"
)

// Config is the presenter configuration. Values are layered:
// defaults < config file < environment < command-line flags.
type Config struct {
	// Deck is the path of a YAML deck. Empty means the built-in deck.
	Deck string `yaml:"deck"`

	// DB is the SQLite path for the LLM request log.
	DB string `yaml:"db"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Keys       KeysConfig       `yaml:"keys"`
	Transition TransitionConfig `yaml:"transition"`
	Assistant  AssistantConfig  `yaml:"assistant"`
}

// KeysConfig lists the key names bound to the two navigation actions.
// Names follow Bubble Tea's key strings ("right", "space", "pgdown", ...).
type KeysConfig struct {
	Advance []string `yaml:"advance"`
	Retreat []string `yaml:"retreat"`
}

// TransitionConfig tunes the slide transition spring.
type TransitionConfig struct {
	Disabled bool    `yaml:"disabled"`
	FPS      int     `yaml:"fps"`
	// Frequency is the spring's angular frequency.
	Frequency float64 `yaml:"frequency"`
	// Damping is the spring's damping ratio.
	Damping float64 `yaml:"damping"`
	// Parallax is the fraction of the width the outgoing slide travels.
	Parallax float64 `yaml:"parallax"`
}

// AssistantConfig shapes the prompt sent to the text-generation service.
type AssistantConfig struct {
	// Subject names what the deck is about. Empty uses the deck title.
	Subject     string  `yaml:"subject"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Keys: KeysConfig{
			Advance: []string{"right", "space", "l", "pgdown"},
			Retreat: []string{"left", "h", "pgup"},
		},
		Transition: TransitionConfig{
			FPS:       60,
			Frequency: 19.0,
			Damping:   0.97,
			Parallax:  0.25,
		},
		Assistant: AssistantConfig{
			MaxTokens:   512,
			Temperature: 0.4,
		},
	}
}

// DefaultPath resolves the config file path:
// $XDG_CONFIG_HOME/pitchdeck/config.yaml, falling back to os.UserConfigDir.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		dir = d
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for fields a config file zeroed out.
func (c *Config) fillDefaults() {
	d := Default()
	if len(c.Keys.Advance) == 0 {
		c.Keys.Advance = d.Keys.Advance
	}
	if len(c.Keys.Retreat) == 0 {
		c.Keys.Retreat = d.Keys.Retreat
	}
	if c.Transition.FPS <= 0 {
		c.Transition.FPS = d.Transition.FPS
	}
	if c.Transition.Frequency <= 0 {
		c.Transition.Frequency = d.Transition.Frequency
	}
	if c.Transition.Damping <= 0 {
		c.Transition.Damping = d.Transition.Damping
	}
	if c.Transition.Parallax <= 0 || c.Transition.Parallax > 1 {
		c.Transition.Parallax = d.Transition.Parallax
	}
	if c.Assistant.MaxTokens <= 0 {
		c.Assistant.MaxTokens = d.Assistant.MaxTokens
	}
}

// ApplyEnv overrides fields from PITCHDECK_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PITCHDECK_DECK"); v != "" {
		c.Deck = v
	}
	if v := os.Getenv("PITCHDECK_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("PITCHDECK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PITCHDECK_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("PITCHDECK_SUBJECT"); v != "" {
		c.Assistant.Subject = v
	}
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
