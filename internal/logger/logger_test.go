package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	t.Cleanup(func() { log = nil })

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-9")
	CtxInfo(ctx, "event posted", "event_id", "ev-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "event posted", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "user-9", line["user_id"])
	assert.Equal(t, "ev-1", line["event_id"])
}

func TestHTTPLogLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	t.Cleanup(func() { log = nil })

	HTTPLog("POST", "/api/v1/events", 402, 0, 10)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, 402, line["status"])
}
