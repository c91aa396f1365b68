// Package llm talks to the hosted text-generation services behind the
// assistant. Each vendor SDK is wrapped in a Provider that makes exactly one
// attempt per call; timeouts and the audit log are decorators around it.
package llm

import "context"

// Provider generates text for a prompt.
type Provider interface {
	// Generate makes a single request. A reply cut off at MaxTokens comes
	// back as ErrMaxTokensExceeded alongside the partial Response.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is one prompt.
type Request struct {
	// System sets the persona and framing.
	System string

	// Messages is the conversation. The assistant sends one user turn.
	Messages []Message

	// MaxTokens caps the reply. Zero leaves the vendor default.
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single-turn user message list.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// StopReason says why a reply ended, normalized across vendors.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the generated reply.
type Response struct {
	Text  string
	Usage Usage

	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string

	StopReason StopReason
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// settle reports a truncated reply as ErrMaxTokensExceeded. The response is
// returned either way so the audit log keeps the partial text.
func settle(resp *Response) (*Response, error) {
	if resp.StopReason == StopMaxTokens {
		return resp, &ErrMaxTokensExceeded{Text: resp.Text}
	}
	return resp, nil
}
