package assistant

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchdeck/internal/llm"
)

// recordingAsker answers with a fixed string and records what it saw.
type recordingAsker struct {
	mu       sync.Mutex
	answer   string
	queries  []string
	requests []string
}

func (a *recordingAsker) Ask(ctx context.Context, query string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, query)
	a.requests = append(a.requests, llm.RequestIDFrom(ctx))
	return a.answer
}

func run(t *testing.T, cmd tea.Cmd) AnswerMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(AnswerMsg)
	require.True(t, ok, "command must resolve to an AnswerMsg")
	return msg
}

func TestSubmit_EmptyInput(t *testing.T) {
	l := NewLifecycle(&recordingAsker{})
	l.LastResponse, l.HasResponse = "previous", true

	for _, text := range []string{"", "   ", "\t\n"} {
		cmd, err := l.Submit(text)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Nil(t, cmd)
	}
	assert.False(t, l.Loading)
	assert.Equal(t, "previous", l.LastResponse)
	assert.True(t, l.HasResponse)
}

func TestSubmit_Resolve(t *testing.T) {
	asker := &recordingAsker{answer: "Blinkit drives valuation."}
	l := NewLifecycle(asker)
	l.LastResponse, l.HasResponse = "old", true

	cmd, err := l.Submit("  Why Blinkit? ")
	require.NoError(t, err)
	assert.True(t, l.Loading)
	assert.Empty(t, l.LastResponse)
	assert.False(t, l.HasResponse)
	assert.Equal(t, "  Why Blinkit? ", l.QueryText)

	msg := run(t, cmd)
	assert.Equal(t, l.RequestID(), msg.RequestID)
	assert.Equal(t, []string{"  Why Blinkit? "}, asker.queries, "query is sent as typed")
	assert.Equal(t, []string{msg.RequestID}, asker.requests, "request id travels in the context")

	require.True(t, l.Resolve(msg))
	assert.False(t, l.Loading)
	assert.True(t, l.HasResponse)
	assert.Equal(t, "Blinkit drives valuation.", l.LastResponse)
	assert.Empty(t, l.RequestID())
}

func TestSubmit_InFlight(t *testing.T) {
	asker := &recordingAsker{answer: "a"}
	l := NewLifecycle(asker)

	first, err := l.Submit("one")
	require.NoError(t, err)

	second, err := l.Submit("two")
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Nil(t, second)
	assert.Equal(t, "one", l.QueryText)

	require.True(t, l.Resolve(run(t, first)))
	assert.Len(t, asker.queries, 1, "only one collaborator call")

	_, err = l.Submit("two")
	assert.NoError(t, err, "a new query is accepted once resolved")
}

func TestResolve_DropsStale(t *testing.T) {
	l := NewLifecycle(&recordingAsker{answer: "a"})

	assert.False(t, l.Resolve(AnswerMsg{RequestID: "nobody", Text: "x"}), "nothing pending")

	_, err := l.Submit("q")
	require.NoError(t, err)
	assert.False(t, l.Resolve(AnswerMsg{RequestID: "other", Text: "x"}))
	assert.True(t, l.Loading)
	assert.False(t, l.HasResponse)
}

func TestToggle_DoesNotCancel(t *testing.T) {
	l := NewLifecycle(&recordingAsker{answer: "late answer"})
	l.Toggle()
	require.True(t, l.PanelOpen)

	cmd, err := l.Submit("q")
	require.NoError(t, err)
	l.Toggle()
	assert.False(t, l.PanelOpen)

	require.True(t, l.Resolve(run(t, cmd)), "answers land while the panel is closed")
	assert.Equal(t, "late answer", l.LastResponse)
}

func TestClose_CancelsInFlight(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "never shown"})
	mock.Block = make(chan struct{})
	l := NewLifecycle(NewService(mock, Options{}))

	cmd, err := l.Submit("q")
	require.NoError(t, err)

	done := make(chan AnswerMsg, 1)
	go func() { done <- cmd().(AnswerMsg) }()

	l.Close()
	l.Close()
	msg := <-done

	assert.Equal(t, FallbackUnavailable, msg.Text)
	assert.False(t, l.Resolve(msg), "results after close are dropped")
	assert.False(t, l.Loading)
	assert.False(t, l.HasResponse)
	assert.True(t, l.Closed())

	_, err = l.Submit("again")
	assert.ErrorIs(t, err, ErrClosed)
}
