package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"ERROR", LogLevelError, true},
		{"warn", LogLevelWarn, true},
		{"Warning", LogLevelWarn, true},
		{" info ", LogLevelInfo, true},
		{"DEBUG", LogLevelDebug, true},
		{"verbose", LogLevelInfo, false},
		{"", LogLevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.in)
		assert.Equal(t, tt.want, got, "level for %q", tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput(LogLevelWarn, &buf)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden too")
	logger.Warn("shown %s", "warning")
	logger.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warning")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestLoggerAtDebugShowsEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput(LogLevelDebug, &buf)

	logger.Debug("decoded %d rows", 42)
	logger.Info("listening")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] decoded 42 rows")
	assert.Contains(t, out, "[INFO] listening")
}
