package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/pitchdeck/internal/llm"
	"github.com/abhisek/pitchdeck/internal/logging"
)

// Purpose labels assistant calls in the audit log.
const Purpose = "assistant"

const (
	// FallbackNoInsight is shown when the service answers with no text.
	FallbackNoInsight = "Unable to generate insight at this moment."

	// FallbackUnavailable is shown when the service cannot be reached.
	FallbackUnavailable = "AI Insight currently unavailable. Please check API Key."
)

// Asker answers one free-text question. It never fails: problems are
// folded into one of the fallback strings.
type Asker interface {
	Ask(ctx context.Context, query string) string
}

// Options shapes the prompt.
type Options struct {
	Subject     string
	MaxTokens   int
	Temperature float64
}

// Service is the Asker backed by an llm.Provider.
type Service struct {
	provider llm.Provider
	opts     Options
}

var _ Asker = (*Service)(nil)

// NewService creates an assistant service. A nil provider is allowed and
// answers every question with FallbackUnavailable.
func NewService(provider llm.Provider, opts Options) *Service {
	if opts.Subject == "" {
		opts.Subject = "the company"
	}
	return &Service{provider: provider, opts: opts}
}

// SystemPrompt is the persona the model answers as.
func SystemPrompt(subject string) string {
	return fmt.Sprintf(`You are a Chief Strategy Officer at a top tier management consulting firm giving a presentation on %s.
Keep answers concise, insightful, and strategic.
Focus on unit economics, contribution margins, and competitive landscape.`, subject)
}

// UserPrompt frames the raw query.
func UserPrompt(query string) string {
	return "User Query: " + query
}

// Ask sends query to the provider once and returns the answer text.
func (s *Service) Ask(ctx context.Context, query string) string {
	if s == nil || s.provider == nil {
		return FallbackUnavailable
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      SystemPrompt(s.opts.Subject),
		Messages:    llm.UserMessage(UserPrompt(query)),
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		// A reply cut off at the token limit is still an answer.
		var maxTok *llm.ErrMaxTokensExceeded
		if errors.As(err, &maxTok) {
			if strings.TrimSpace(maxTok.Text) == "" {
				return FallbackNoInsight
			}
			return maxTok.Text
		}
		if errors.Is(err, context.Canceled) {
			logging.Debug("assistant query cancelled",
				zap.String("request_id", llm.RequestIDFrom(ctx)))
		} else {
			logging.Warn("assistant query failed",
				zap.String("request_id", llm.RequestIDFrom(ctx)),
				zap.Error(err))
		}
		return FallbackUnavailable
	}

	if strings.TrimSpace(resp.Text) == "" {
		return FallbackNoInsight
	}
	return resp.Text
}
