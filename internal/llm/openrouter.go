package llm

import (
	"net/http"
)

const (
	openRouterBaseURL  = "https://openrouter.ai/api/v1"
	openRouterAppTitle = "pitchdeck"
)

// NewOpenRouterProvider targets OpenRouter's OpenAI-compatible API. Model
// IDs carry the upstream vendor ("google/gemini-2.5-flash").
func NewOpenRouterProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBaseURL
	}
	client := &http.Client{Transport: attribution{base: http.DefaultTransport}}
	return newChatCompletions(cfg, client)
}

// attribution sets the app name OpenRouter shows in its usage dashboard.
type attribution struct {
	base http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterAppTitle)
	return a.base.RoundTrip(r)
}
