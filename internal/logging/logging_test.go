package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Warn)
	l.Error("bad %d", 1)
	l.Warn("careful")
	l.Info("hidden")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[ERROR] bad 1")
	assert.Contains(t, out, "[WARN] careful")
	assert.NotContains(t, out, "hidden")
}

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel(" debug ")
	assert.True(t, ok)
	assert.Equal(t, Debug, level)

	level, ok = ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, Info, level)
	assert.Equal(t, "UNKNOWN", Level(9).String())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "TRACE")
	assert.Equal(t, Trace, FromEnv().Level())
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, Info, FromEnv().Level())
}
