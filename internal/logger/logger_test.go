package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Output: &buf})
	l.Debug("hidden")
	l.Info("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=v")

	buf.Reset()
	New(Options{Output: &buf, Quiet: true, Debug: true}).Warn("nope")
	assert.Empty(t, buf.String())
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf, JSON: true, Debug: true}).Debug("batch.file.ok", "path", "a.pdf")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "batch.file.ok", m["msg"])
	assert.Equal(t, "a.pdf", m["path"])
}

func TestNew_Compact(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf, Compact: true}).Info("hello", "n", 1)
	assert.Equal(t, "msg=hello n=1\n", buf.String())
}
