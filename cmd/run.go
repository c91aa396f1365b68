package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/pitchdeck/internal/app"
	"github.com/abhisek/pitchdeck/internal/assistant"
	"github.com/abhisek/pitchdeck/internal/config"
	"github.com/abhisek/pitchdeck/internal/deck"
	"github.com/abhisek/pitchdeck/internal/llm"
	"github.com/abhisek/pitchdeck/internal/logging"
	"github.com/abhisek/pitchdeck/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runApp loads the deck, wires the assistant, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := loadDeck(settings.Deck)
	if err != nil {
		return err
	}

	st, err := openStore(settings)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := newAssistant(cmd.Context(), settings, d, st.EventRepo(), true)
	fullscreen, _ := cmd.Flags().GetBool("fullscreen")

	return app.Run(app.Options{
		Deck:       d,
		Config:     settings,
		Asker:      svc,
		Fullscreen: fullscreen,
	})
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newAssistant builds the assistant service. Without a configured provider
// the service still answers, with the unavailable fallback.
func newAssistant(ctx context.Context, cfg config.Config, d *deck.Deck, repo store.EventRepo, warn bool) *assistant.Service {
	provider, err := llm.NewProviderFromEnv(ctx, repo)
	if err != nil {
		logging.Warn("llm provider not configured", zap.Error(err))
		if warn {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "The assistant will be unavailable.")
		}
	}

	subject := cfg.Assistant.Subject
	if subject == "" {
		subject = d.TopicName()
	}
	return assistant.NewService(provider, assistant.Options{
		Subject:     subject,
		MaxTokens:   cfg.Assistant.MaxTokens,
		Temperature: cfg.Assistant.Temperature,
	})
}
