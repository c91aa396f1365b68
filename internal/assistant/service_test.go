package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchdeck/internal/llm"
)

func TestService_Answer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Gold lifts frequency."})
	svc := NewService(mock, Options{Subject: "Zomato", MaxTokens: 256, Temperature: 0.2})

	got := svc.Ask(t.Context(), "Is the Gold model sustainable?")
	assert.Equal(t, "Gold lifts frequency.", got)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Contains(t, req.System, "Chief Strategy Officer")
	assert.Contains(t, req.System, "presentation on Zomato.")
	assert.Contains(t, req.System, "unit economics, contribution margins, and competitive landscape")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "User Query: Is the Gold model sustainable?", req.Messages[0].Content)
	assert.Equal(t, 256, req.MaxTokens)
	assert.Equal(t, 0.2, req.Temperature)
}

func TestService_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want string
	}{
		{"empty text", llm.MockResponse{Text: ""}, FallbackNoInsight},
		{"blank text", llm.MockResponse{Text: "  \n"}, FallbackNoInsight},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}, FallbackUnavailable},
		{"unavailable", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial")}}, FallbackUnavailable},
		{"truncated keeps text", llm.MockResponse{Text: "partial", Truncated: true}, "partial"},
		{"truncated empty", llm.MockResponse{Truncated: true}, FallbackNoInsight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(llm.NewMockProvider(tt.resp), Options{})
			assert.Equal(t, tt.want, svc.Ask(t.Context(), "q"))
		})
	}
}

func TestService_NoProvider(t *testing.T) {
	assert.Equal(t, FallbackUnavailable, NewService(nil, Options{}).Ask(t.Context(), "q"))

	var svc *Service
	assert.Equal(t, FallbackUnavailable, svc.Ask(t.Context(), "q"))
}

func TestService_ExhaustedMock(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), Options{})
	assert.Equal(t, FallbackUnavailable, svc.Ask(t.Context(), "q"))
}

func TestService_Cancelled(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "late"})
	mock.Block = make(chan struct{})
	svc := NewService(mock, Options{})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Equal(t, FallbackUnavailable, svc.Ask(ctx, "q"))
}

func TestSystemPrompt_DefaultSubject(t *testing.T) {
	svc := NewService(nil, Options{})
	assert.Equal(t, "the company", svc.opts.Subject)
	assert.Contains(t, SystemPrompt("Acme"), "presentation on Acme.")
}
