package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithWriterFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("expand", &buf)
	l.With(map[string]any{"file": "CapacityFactor.csv"}).Warnf("skipped %d rows", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "expand", entry["component"])
	assert.Equal(t, "CapacityFactor.csv", entry["file"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "skipped 2 rows", entry["message"])
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("warn"))
	defer func() { require.NoError(t, SetLevel("info")) }()

	var buf bytes.Buffer
	l := NewWithWriter("lvl", &buf)
	l.Infof("hidden")
	l.Warnf("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Equal(t, 1, strings.Count(buf.String(), "shown"))

	assert.Error(t, SetLevel("loud"))
}
