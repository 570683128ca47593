package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/testutil"
)

func newTestLogger(level Level) (*logger, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	return &logger{level: level, normalOut: out, errorOut: errOut}, out, errOut
}

func decode(t *testing.T, b *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any

	require.NoError(t, json.Unmarshal(b.Bytes(), &m))

	return m
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, out, errOut := newTestLogger(WARN)

	l.Info("hidden")
	l.Debugf("hidden %d", 1)
	assert.Empty(t, out.String())

	l.Warnf("pool size %d", 5)
	assert.Equal(t, "pool size 5", decode(t, out)["message"])
	assert.Equal(t, "WARN", decode(t, out)["level"])

	l.Error("connection refused")
	assert.Equal(t, "connection refused", decode(t, errOut)["message"])
}

func TestLogger_ChangeLevel(t *testing.T) {
	l, out, _ := newTestLogger(ERROR)

	l.Info("before")
	assert.Empty(t, out.String())

	l.ChangeLevel(DEBUG)
	l.Debug("after")

	assert.Equal(t, "after", decode(t, out)["message"])
}

func TestLogger_FatalExits(t *testing.T) {
	l, _, errOut := newTestLogger(INFO)

	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("cannot start: %v", "port in use")

	assert.Equal(t, 1, code)
	assert.Equal(t, "cannot start: port in use", decode(t, errOut)["message"])
}

type prettyMessage struct{}

func (prettyMessage) PrettyPrint(w io.Writer) { fmt.Fprintln(w, "pretty!") }

func TestLogger_TerminalUsesPrettyPrint(t *testing.T) {
	l, out, _ := newTestLogger(DEBUG)
	l.isTerminal = true

	l.Debug(prettyMessage{})

	assert.Contains(t, out.String(), "DEBU")
	assert.Contains(t, out.String(), "pretty!")
}

func TestContextLogger_AddsTraceID(t *testing.T) {
	l, out, _ := newTestLogger(DEBUG)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	cl := NewContextLogger(ctx, l)
	cl.Infof("standings for %d", 2024)

	m := decode(t, out)
	assert.Equal(t, "standings for 2024", m["message"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", m["trace_id"])
}

func TestContextLogger_NoSpan(t *testing.T) {
	l, out, _ := newTestLogger(DEBUG)

	NewContextLogger(context.Background(), l).Info("plain")

	m := decode(t, out)
	assert.Equal(t, "plain", m["message"])
	assert.NotContains(t, m, "trace_id")
}

func TestGetLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"notice", NOTICE},
		{"Warn", WARN},
		{"error", ERROR},
		{"FATAL", FATAL},
		{"verbose", INFO},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.expected, GetLevelFromString(tc.input), "TEST[%d] Failed: %s", i, tc.input)
	}
}

func TestNewLogger_SplitsStreams(t *testing.T) {
	stdout := testutil.StdoutOutputForFunc(func() {
		stderr := testutil.StderrOutputForFunc(func() {
			l := NewLogger(INFO)

			l.Infof("lights out at %s", "15:00")
			l.Error("red flag")
		})

		assert.Contains(t, stderr, "red flag")
		assert.NotContains(t, stderr, "lights out")
	})

	assert.Contains(t, stdout, "lights out at 15:00")
	assert.NotContains(t, stdout, "red flag")
}
