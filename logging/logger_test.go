package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLevel("debug"))
	assert.Equal(t, LogLevelWarn, ParseLevel("warn"))
	assert.Equal(t, LogLevelError, ParseLevel("error"))
	assert.Equal(t, LogLevelInfo, ParseLevel("info"))
	assert.Equal(t, LogLevelInfo, ParseLevel("bogus"))
}

func TestServiceLoggerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LogLevelWarn, Output: &buf})

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should appear")
}

func TestServiceLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LogLevelInfo, Output: &buf}).
		WithComponent("orchestrator").
		WithSession("sess-1")

	logger.Info("processed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "orchestrator", entry["component"])
	assert.Equal(t, "sess-1", entry["session_id"])
	assert.Equal(t, "processed", entry["msg"])
}

func TestLogAgentRun(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LogLevelInfo, Output: &buf})

	logger.LogAgentRun("job-market", "ok", 120*time.Millisecond, "")
	logger.LogAgentRun("job-market", "failed", 5*time.Millisecond, "connection refused")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[1], `"level":"WARN"`)
	assert.Contains(t, lines[1], "connection refused")
}

func TestLogModelCall(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: LogLevelInfo, Output: &buf})

	logger.LogModelCall("amazon.titan-text-express-v1", 300*time.Millisecond, nil)
	logger.LogModelCall("amazon.titan-text-express-v1", 10*time.Millisecond, errors.New("throttled"))

	out := buf.String()
	assert.Contains(t, out, "completion call completed")
	assert.Contains(t, out, "throttled")
}
