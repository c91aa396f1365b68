package logging

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	require.NoError(t, Initialize("", ""))
	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}

func TestInitialize_WritesToFile(t *testing.T) {
	t.Setenv(LogFileEnvVar, "")
	path := filepath.Join(t.TempDir(), "logs", "deck.log")

	require.NoError(t, Initialize("debug", path))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Info("hello", zap.String("k", "v"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestHelpersUseGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Debug("d")
	Warn("w")
	Error("e")

	assert.Equal(t, 3, logs.Len())
}

func TestHelpersBeforeInitializeAreConcurrentSafe(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, GetLogger())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Info("i")
			Debug("d")
			assert.NotNil(t, GetLogger())
		}()
	}
	wg.Wait()
	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}
