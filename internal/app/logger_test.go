package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Run("writes structured logs to file and clean output to console",
		func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), "custom.log")
			t.Setenv(LogEnvVar, logFile)

			logLevel := &slog.LevelVar{}
			logLevel.Set(slog.LevelInfo)
			stderr := &bytes.Buffer{}

			logger, closer, err := setupLogger(stderr, logLevel)
			require.NoError(t, err)
			require.NotNil(t, closer)
			defer closer.Close()

			logger.Info("test message", "key", "value")

			// Console output is clean
			assert.Contains(t, stderr.String(), "test message")
			assert.NotContains(t, stderr.String(), "key=value") // Info doesn't show attrs by default

			// File output is structured
			data, err := os.ReadFile(logFile)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"msg":"test message"`)
			assert.Contains(t, string(data), `"key":"value"`)
		})

	t.Run("console shows error prefix and attrs",
		func(t *testing.T) {
			t.Setenv(LogEnvVar, filepath.Join(t.TempDir(), "custom.log"))

			logLevel := &slog.LevelVar{}
			stderr := &bytes.Buffer{}

			logger, closer, err := setupLogger(stderr, logLevel)
			require.NoError(t, err)
			defer closer.Close()

			logger.Error("something broke", "error", "boom")
			assert.Contains(t, stderr.String(), "Error: something broke: boom")
		})

	t.Run("debug messages are gated by the level var",
		func(t *testing.T) {
			t.Setenv(LogEnvVar, filepath.Join(t.TempDir(), "custom.log"))

			logLevel := &slog.LevelVar{}
			logLevel.Set(slog.LevelInfo)
			stderr := &bytes.Buffer{}

			logger, closer, err := setupLogger(stderr, logLevel)
			require.NoError(t, err)
			defer closer.Close()

			logger.Debug("quiet")
			assert.NotContains(t, stderr.String(), "quiet")

			logLevel.Set(slog.LevelDebug)
			logger.Debug("loud")
			assert.Contains(t, stderr.String(), "loud")
		})
}
