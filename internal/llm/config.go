package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Vendor names accepted in Config.Provider.
const (
	VendorGemini     = "gemini"
	VendorOpenAI     = "openai"
	VendorAnthropic  = "anthropic"
	VendorOpenRouter = "openrouter"
	VendorMock       = "mock"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvProvider = "PITCHDECK_LLM_PROVIDER"
	EnvAPIKey   = "PITCHDECK_LLM_API_KEY"
	EnvModel    = "PITCHDECK_LLM_MODEL"
	EnvBaseURL  = "PITCHDECK_LLM_BASE_URL"
	EnvTimeout  = "PITCHDECK_LLM_TIMEOUT"
)

// Config selects one vendor and how to reach it. The presenter only ever
// talks to a single provider, so the settings are flat.
type Config struct {
	Provider string
	APIKey   string

	// Model is a friendly alias ("gemini-flash") or a raw vendor model ID.
	// Empty uses the vendor default.
	Model string

	// BaseURL overrides the endpoint of OpenAI-compatible vendors.
	BaseURL string

	// Timeout bounds a single request. Zero disables it.
	Timeout time.Duration
}

// vendor describes one supported text-generation service.
type vendor struct {
	name string
	// keyEnv lists the conventional API key variables, probed in order.
	keyEnv       []string
	defaultModel string
	aliases      map[string]string
	build        func(ctx context.Context, cfg Config) (Provider, error)
}

// vendors is in discovery order. The hosted deck read a bare API_KEY for
// Gemini, so that variable is honoured there.
var vendors = []vendor{
	{
		name:         VendorGemini,
		keyEnv:       []string{"GEMINI_API_KEY", "API_KEY"},
		defaultModel: "gemini-flash",
		aliases: map[string]string{
			"gemini-flash": "gemini-3-flash-preview",
			"gemini-pro":   "gemini-3-pro-preview",
		},
		build: func(ctx context.Context, cfg Config) (Provider, error) {
			return NewGeminiProvider(ctx, cfg)
		},
	},
	{
		name:         VendorOpenAI,
		keyEnv:       []string{"OPENAI_API_KEY"},
		defaultModel: "gpt-mini",
		aliases: map[string]string{
			"gpt-mini": "gpt-4.1-mini",
		},
		build: func(_ context.Context, cfg Config) (Provider, error) {
			return NewOpenAIProvider(cfg)
		},
	},
	{
		name:         VendorAnthropic,
		keyEnv:       []string{"ANTHROPIC_API_KEY"},
		defaultModel: "claude-haiku",
		aliases: map[string]string{
			"claude-sonnet": "claude-sonnet-4-5-20250929",
			"claude-haiku":  "claude-haiku-4-5-20251001",
		},
		build: func(_ context.Context, cfg Config) (Provider, error) {
			return NewAnthropicProvider(cfg)
		},
	},
	{
		name:         VendorOpenRouter,
		keyEnv:       []string{"OPENROUTER_API_KEY"},
		defaultModel: "google/gemini-2.5-flash",
		build: func(_ context.Context, cfg Config) (Provider, error) {
			return NewOpenRouterProvider(cfg)
		},
	},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// modelID maps an alias to the vendor's model ID. Unknown names pass
// through so any model the vendor serves can be configured directly.
func (v vendor) modelID(name string) string {
	if name == "" {
		name = v.defaultModel
	}
	if id, ok := v.aliases[name]; ok {
		return id
	}
	return name
}

// standardKey returns the first conventional API key set for the vendor.
func (v vendor) standardKey() string {
	for _, env := range v.keyEnv {
		if k := os.Getenv(env); k != "" {
			return k
		}
	}
	return ""
}

// DefaultConfig returns Gemini with a 30 second timeout and no key.
func DefaultConfig() Config {
	return Config{
		Provider: VendorGemini,
		Timeout:  30 * time.Second,
	}
}

// ConfigFromEnv reads the PITCHDECK_LLM_* variables over the defaults.
// When PITCHDECK_LLM_API_KEY is unset the selected vendor's conventional
// variable (OPENAI_API_KEY, ...) supplies the key.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv(EnvProvider); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	if t := os.Getenv(EnvTimeout); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.Model = os.Getenv(EnvModel)
	cfg.BaseURL = os.Getenv(EnvBaseURL)

	if cfg.APIKey == "" {
		if v, ok := lookupVendor(cfg.Provider); ok {
			cfg.APIKey = v.standardKey()
		}
	}
	return cfg
}

// DiscoverConfig returns a Config for the first vendor, in discovery
// order, whose conventional key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		if k := v.standardKey(); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = v.name
			cfg.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig prefers the explicit PITCHDECK_LLM_* settings and falls
// back to discovery. An explicit provider without a key is reported as
// unresolved rather than swapped for another vendor.
func ResolveConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	if os.Getenv(EnvProvider) != "" {
		return cfg, false
	}
	if d, ok := DiscoverConfig(); ok {
		d.Timeout = cfg.Timeout
		d.Model = cfg.Model
		return d, true
	}
	return cfg, false
}

// Validate checks the provider is known and has a key.
func (c Config) Validate() error {
	if c.Provider == VendorMock {
		return nil
	}
	v, ok := lookupVendor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s provider needs an API key: set %s or %s",
			c.Provider, EnvAPIKey, strings.Join(v.keyEnv, " or "))
	}
	return nil
}
