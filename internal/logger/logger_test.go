package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	l := New(buf, "orion-test", false)
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "orion-test", entries[0]["service"])
	assert.Equal(t, "info", entries[0]["level"])

	buf.Reset()
	l = New(buf, "orion-test", true)
	l.Debug().Msg("shown")
	assert.Len(t, decodeLines(t, buf), 1)
}

func TestWithRequestID(t *testing.T) {
	buf := new(bytes.Buffer)
	base := New(buf, "orion-test", false)
	ctx := WithRequestID(base.WithContext(context.Background()), "req-42")

	FromContext(ctx).Info().Msg("handled")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0]["request_id"])
	assert.Equal(t, "orion-test", entries[0]["service"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	assert.Same(t, &log.Logger, FromContext(context.Background()))
}

func TestInitWritesToOutput(t *testing.T) {
	saved := log.Logger
	t.Cleanup(func() { log.Logger = saved })

	buf := new(bytes.Buffer)
	Init(buf, "orion-test", false)
	log.Info().Msg("ready")

	assert.Contains(t, buf.String(), "ready")
	assert.Contains(t, buf.String(), "orion-test")
}
