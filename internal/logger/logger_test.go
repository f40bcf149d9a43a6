package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestConfigure(t *testing.T) {
	t.Setenv(LogLevelEnv, "error")

	t.Run("flag wins over environment", func(t *testing.T) {
		require.NoError(t, Configure("debug", ""))
		assert.Equal(t, log.DebugLevel, Logger.GetLevel())
	})

	t.Run("environment used without flag", func(t *testing.T) {
		require.NoError(t, Configure("", ""))
		assert.Equal(t, log.ErrorLevel, Logger.GetLevel())
	})

	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slidedeck.log")
		require.NoError(t, Configure("info", path))
		assert.FileExists(t, path)
	})

	t.Run("unwritable log file", func(t *testing.T) {
		err := Configure("info", filepath.Join(t.TempDir(), "missing", "slidedeck.log"))
		assert.Error(t, err)
	})
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Logger.SetLevel(log.InfoLevel)

	Info("resolved credential", "provider", "openai")
	assert.Contains(t, buf.String(), "resolved credential")
	assert.Contains(t, buf.String(), "provider=openai")

	buf.Reset()
	Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestNewStyledLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Logger.SetLevel(log.WarnLevel)

	component := NewStyledLogger("HTTP")
	assert.Equal(t, log.WarnLevel, component.GetLevel())

	component.Warn("slow request", "path", "/api/has-required-key")
	assert.Contains(t, buf.String(), "HTTP")
	assert.Contains(t, buf.String(), "slow request")
}
