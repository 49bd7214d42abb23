package logx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/riderota/core/pkg/kernel"
	"github.com/riderota/core/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(format logx.Format, level logx.Level) (*logx.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := logx.DefaultConfig()
	cfg.Format = format
	cfg.Level = level
	cfg.EnableColors = false
	cfg.Output = buf
	return logx.NewLogger(cfg), buf
}

func TestJSONFormatterIncludesContextFields(t *testing.T) {
	logger, buf := newBufferLogger(logx.FormatJSON, logx.LevelInfo)

	ctx := kernel.WithRequestID(context.Background(), "req-1")
	ctx = kernel.WithTenant(ctx, "acme")
	ctx = kernel.WithAuth(ctx, &kernel.AuthContext{UserID: "u-1", TenantSlug: "acme"})

	logger.WithField("event", "login").WithError(errors.New("boom")).WithContext(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "login", line["event"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "acme", line["tenant"])
	assert.Equal(t, "u-1", line["user_id"])
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(logx.FormatConsole, logx.LevelWarn)

	logger.WithField("k", "v").Info("dropped")
	assert.Zero(t, buf.Len())

	logger.WithField("b", 2).WithField("a", 1).Warn("kept")
	assert.Contains(t, buf.String(), "[WARN ] kept a=1 b=2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logx.LevelWarn, logx.ParseLevel("warning"))
	assert.Equal(t, logx.LevelOff, logx.ParseLevel("OFF"))
	assert.Equal(t, logx.LevelInfo, logx.ParseLevel("nonsense"))
}
