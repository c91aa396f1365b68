// Package assistant implements the strategy assistant: a one-question,
// one-answer exchange with a text-generation service, shown in a panel
// over the deck.
package assistant

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/pitchdeck/internal/llm"
)

var (
	// ErrEmptyInput is returned by Submit for blank queries.
	ErrEmptyInput = errors.New("assistant: empty query")

	// ErrInFlight is returned by Submit while an answer is pending.
	ErrInFlight = errors.New("assistant: query already in flight")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("assistant: closed")
)

// AnswerMsg carries a resolved answer back into the update loop.
type AnswerMsg struct {
	RequestID string
	Text      string
}

// Lifecycle tracks one assistant panel's query state. It is owned by the
// update loop and is not safe for concurrent use; only the Asker call runs
// off the loop.
type Lifecycle struct {
	asker Asker

	QueryText    string
	Loading      bool
	LastResponse string
	HasResponse  bool
	PanelOpen    bool

	requestID string
	ctx       context.Context
	cancel    context.CancelFunc
	closed    bool
}

// NewLifecycle creates a lifecycle bound to a fresh context. The context
// lives until Close.
func NewLifecycle(asker Asker) *Lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return &Lifecycle{asker: asker, ctx: ctx, cancel: cancel}
}

// Toggle opens or closes the panel. Closing never cancels a pending query.
func (l *Lifecycle) Toggle() {
	l.PanelOpen = !l.PanelOpen
}

// Submit starts a query for text and returns the command that resolves
// it. The text is sent as typed; only the emptiness check trims it.
func (l *Lifecycle) Submit(text string) (tea.Cmd, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if l.closed {
		return nil, ErrClosed
	}
	if l.Loading {
		return nil, ErrInFlight
	}

	l.QueryText = text
	l.Loading = true
	l.LastResponse = ""
	l.HasResponse = false

	id := uuid.NewString()
	l.requestID = id
	ctx := llm.WithRequestID(l.ctx, id)
	asker := l.asker

	return func() tea.Msg {
		return AnswerMsg{RequestID: id, Text: asker.Ask(ctx, text)}
	}, nil
}

// Resolve applies an answer. Answers for a request other than the pending
// one are dropped and Resolve reports false.
func (l *Lifecycle) Resolve(msg AnswerMsg) bool {
	if !l.Loading || msg.RequestID != l.requestID {
		return false
	}
	l.Loading = false
	l.LastResponse = msg.Text
	l.HasResponse = true
	l.requestID = ""
	return true
}

// RequestID returns the pending request id, or "".
func (l *Lifecycle) RequestID() string {
	return l.requestID
}

// Close cancels any pending query and rejects further ones. Safe to call
// more than once.
func (l *Lifecycle) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.cancel()
	l.Loading = false
	l.requestID = ""
}

// Closed reports whether Close was called.
func (l *Lifecycle) Closed() bool {
	return l.closed
}
