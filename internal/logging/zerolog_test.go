package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZerologLogger(&buf, false, "debug")
	require.NoError(t, err)

	l.With("component", "api").Warn(context.Background(), "request failed", "status", 401)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "request failed", line["message"])
	assert.Equal(t, "api", line["component"])
	assert.EqualValues(t, 401, line["status"])
}

func TestZerologLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZerologLogger(&buf, false, "warn")
	require.NoError(t, err)

	l.Info(context.Background(), "hidden")
	l.Error(context.Background(), "shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestZerologLogger_OddFieldsDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZerologLogger(&buf, false, "info")
	require.NoError(t, err)

	require.NotPanics(t, func() { l.Info(context.Background(), "odd", "dangling") })
	assert.Contains(t, buf.String(), "odd number of log fields")
}

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, FormatText, "info")
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)

	l, err = New(&buf, FormatJSON, "info")
	require.NoError(t, err)
	assert.IsType(t, &ZerologLogger{}, l)

	l, err = New(&buf, FormatConsole, "")
	require.NoError(t, err)
	l.Info(context.Background(), "console-line")
	assert.True(t, strings.Contains(buf.String(), "console-line"))

	buf.Reset()
	l, err = New(&buf, "CONSOLE", "INFO")
	require.NoError(t, err)
	l.Info(context.Background(), "upper-case")
	assert.NotContains(t, buf.String(), `"message"`)

	_, err = New(&buf, "xml", "info")
	require.Error(t, err)

	_, err = New(&buf, FormatText, "loud")
	require.Error(t, err)
}
