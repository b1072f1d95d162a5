package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type requestKey struct{}

func extractRequest(ctx context.Context) []slog.Attr {
	if id, ok := ctx.Value(requestKey{}).(string); ok {
		return []slog.Attr{slog.String("request_id", id)}
	}
	return nil
}

func TestNewLoggerJSON(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger, err := newLogger(&Opts{Level: "debug", Format: FormatJSON, Fields: []string{"service:badges"}}, buffer, extractRequest)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), requestKey{}, "abc")
	logger.DebugContext(ctx, "composed", "width", 42)

	record := map[string]any{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	require.Equal(t, "composed", record["msg"])
	require.Equal(t, "DEBUG", record["level"])
	require.Equal(t, "badges", record["service"])
	require.Equal(t, "abc", record["request_id"])
	require.EqualValues(t, 42, record["width"])
}

func TestNewLoggerText(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger, err := newLogger(&Opts{Level: "warn", Format: FormatText}, buffer, nil)
	require.NoError(t, err)

	logger.Info("dropped")
	require.Zero(t, buffer.Len())
	logger.Warn("kept", "status", 502)
	require.True(t, strings.Contains(buffer.String(), "msg=kept"))
	require.True(t, strings.Contains(buffer.String(), "status=502"))
}

func TestContextHandlerWithAttrs(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger, err := newLogger(&Opts{Format: FormatJSON}, buffer, extractRequest)
	require.NoError(t, err)

	logger.With("component", "server").InfoContext(context.Background(), "no request")
	record := map[string]any{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &record))
	require.Equal(t, "server", record["component"])
	require.NotContains(t, record, "request_id")
}

func TestNewLoggerErrors(t *testing.T) {
	tests := []struct {
		name string
		opts *Opts
	}{
		{name: "level", opts: &Opts{Level: "verbose"}},
		{name: "format", opts: &Opts{Format: "pretty"}},
		{name: "field", opts: &Opts{Fields: []string{"nocolon"}}},
		{name: "empty key", opts: &Opts{Fields: []string{":value"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLogger(tt.opts, &bytes.Buffer{}, nil)
			require.Error(t, err)
		})
	}
}
