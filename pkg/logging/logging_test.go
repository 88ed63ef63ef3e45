package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNopAcceptsKeyvals(t *testing.T) {
	l := Nop().Named("test").With("provider", "harri")
	l.Info("fetched", "jobs", 3)
	assert.NoError(t, l.Sync())
}

func TestNew_WritesJSONAboveLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.log")
	l := New("warn", WithFormat("xml"), WithOutputs(path))

	l.Info("skipped", "provider", "foras")
	l.Warn("provider failed", "provider", "harri", "jobs", 0)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "provider failed", entry["msg"])
	assert.Equal(t, "harri", entry["provider"])
}

func TestNew_ConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.log")
	l := New("debug", WithFormat(FormatConsole), WithOutputs(path)).Named("cli")

	l.Debug("loaded", "providers", 6)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "cli")
	assert.Contains(t, out, `{"providers": 6}`)
}
