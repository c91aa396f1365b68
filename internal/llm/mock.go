package llm

import (
	"context"
	"sync"
)

// MockResponse is one scripted reply.
type MockResponse struct {
	Text  string
	Usage Usage
	// Truncated makes the reply stop at the token limit.
	Truncated bool
	Err       error
}

// MockProvider replays scripted replies in order and records every
// request. With Block set, Generate waits for the channel to close or the
// context to end before replying.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
	Block  chan struct{}
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) ModelID() string { return VendorMock }

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, &ErrProviderUnavailable{Err: ctx.Err()}
		}
	}

	next, ok := m.pop()
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case next.Err != nil:
		return nil, next.Err
	}

	stop := StopEnd
	if next.Truncated {
		stop = StopMaxTokens
	}
	return settle(&Response{Text: next.Text, Usage: next.Usage, Model: VendorMock, StopReason: stop})
}

func (m *MockProvider) pop() (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.script) == 0 {
		return MockResponse{}, false
	}
	next := m.script[0]
	m.script = m.script[1:]
	return next, true
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
