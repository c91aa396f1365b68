package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/pitchdeck/internal/store"
)

// NewProvider builds the configured vendor's provider wrapped as
// caller → logging → timeout → vendor. Logging sits outside the timeout so
// timed-out calls are recorded with their latency. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	base, err := newBase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithLogging(WithTimeout(base, cfg.Timeout), cfg.Provider, eventRepo), nil
}

func newBase(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.Provider == VendorMock {
		return NewMockProvider(), nil
	}
	v, ok := lookupVendor(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	cfg.Model = v.modelID(cfg.Model)
	return v.build(ctx, cfg)
}

// NewProviderFromEnv resolves the configuration from the environment and
// builds the provider. It returns an error wrapping ErrNotConfigured when
// no key is available.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg, ok := ResolveConfig()
	if !ok {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
		}
		return nil, ErrNotConfigured
	}
	return NewProvider(ctx, cfg, eventRepo)
}
