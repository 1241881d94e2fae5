package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogOptions{
		ServiceName: "gopost",
		Level:       "debug",
		MaskFields:  []string{"password", " Cookie "},
		Output:      &buf,
	})

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.DebugContext(ctx, "login attempt",
		"username", "jane",
		"password", "s3cret",
		"body", `{"username":"jane","password":"s3cret"}`,
		"headers", map[string]string{"cookie": "sid=abc", "accept": "json"},
	)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "login attempt", line["msg"])
	assert.Equal(t, "DEBUG", line["severity"])
	assert.Contains(t, line, "ts")
	assert.Contains(t, line["file"], "internal/pkg/instrument/logging_test.go:")
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "gopost", line["service"])
	assert.Equal(t, "jane", line["username"])
	assert.Equal(t, "***", line["password"])
	assert.JSONEq(t, `{"username":"jane","password":"***"}`, line["body"].(string))
	assert.Equal(t, map[string]any{"cookie": "***", "accept": "json"}, line["headers"])
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogOptions{Level: "warn", Output: &buf})

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.With("password", "x").Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.NotContains(t, buf.String(), "_cID")
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}
