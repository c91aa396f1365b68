package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pitchdeck/internal/assistant"
	"github.com/abhisek/pitchdeck/internal/llm"
	"github.com/abhisek/pitchdeck/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PITCHDECK_LOG_LEVEL", "")
	t.Setenv("PITCHDECK_DECK", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pitchdeck")
}

func TestDeckList_BuiltIn(t *testing.T) {
	out, err := execute(t, "deck", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Zomato: Path to Profitability")
	assert.Contains(t, out, "The Blinkit Bet")
	assert.Contains(t, out, "chart-bar")
}

func TestDeckValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("format: \"1.0\"\ntitle: T\nslides:\n  - {kind: title, title: Hi}\n"), 0o644))
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("format: \"1.0\"\ntitle: T\nslides: []\n"), 0o644))

	out, err := execute(t, "deck", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (1 slides, format 1.0)")

	_, err = execute(t, "deck", "validate", bad)
	assert.Error(t, err)
}

func TestAskOnce(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Blinkit drives the valuation."})
	life := assistant.NewLifecycle(assistant.NewService(mock, assistant.Options{Subject: "Zomato"}))

	got, err := askOnce(life, "What drives the valuation?")
	require.NoError(t, err)
	assert.Equal(t, "Blinkit drives the valuation.", got)
	assert.True(t, life.Closed())
}

func TestAskOnce_FailureIsFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial")}})
	life := assistant.NewLifecycle(assistant.NewService(mock, assistant.Options{}))

	got, err := askOnce(life, "anything")
	require.NoError(t, err)
	assert.Equal(t, assistant.FallbackUnavailable, got)
}

func TestAskOnce_Empty(t *testing.T) {
	life := assistant.NewLifecycle(assistant.NewService(nil, assistant.Options{}))
	_, err := askOnce(life, "   ")
	assert.Error(t, err)
}

func seedEvents(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	repo := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-3-flash-preview", Purpose: "assistant",
		InputTokens: 1200, OutputTokens: 80, LatencyMs: 420, Success: true,
		RequestBody: "[user]\nIs Gold working?", ResponseBody: "Members order more often.",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openrouter", Model: "acme/house-model", Purpose: "assistant",
		Success: false, ErrorMessage: "rate limited",
	}))
	return path
}

func TestLLMCommands(t *testing.T) {
	db := seedEvents(t)

	out, err := execute(t, "--db", db, "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "gemini-3-flash-preview")
	assert.Contains(t, out, "✗")

	out, err = execute(t, "--db", db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "No price list entry for: acme/house-model")

	out, err = execute(t, "--db", db, "llm", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Is Gold working?")
	assert.Contains(t, out, "Members order more often.")

	_, err = execute(t, "--db", db, "llm", "view", "99")
	assert.Error(t, err)
}
