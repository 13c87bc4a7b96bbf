package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registro/internal/core"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Format: FormatJSON, Output: &buf, Component: ComponentLedger})
	l.Info("imported", FieldCount, 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "imported", rec["msg"])
	assert.Equal(t, ComponentLedger, rec[FieldComponent])
	assert.EqualValues(t, 3, rec[FieldCount])

	buf.Reset()
	l.WithComponent(ComponentMenu).Warn("oops")
	assert.Equal(t, 1, strings.Count(buf.String(), `"component"`))
	assert.Contains(t, buf.String(), `"component":"menu"`)
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Output: &buf})
	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=app")
}

func TestLogFields(t *testing.T) {
	e := core.NewExpense(core.MustDate(2024, 1, 2), core.MustMoney("3.5"), "Food", "x")
	f := NewFields().WithOperation(OpAdd).WithExpense(e).WithError(errors.New("boom")).WithError(nil)
	assert.Equal(t, OpAdd, f[FieldOperation])
	assert.Equal(t, "2024-01-02", f[FieldDate])
	assert.Equal(t, "3.5", f[FieldAmount])
	assert.Equal(t, "boom", f[FieldError])
	assert.Len(t, f.ToSlice(), len(f)*2)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
