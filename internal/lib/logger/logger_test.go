package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/linemk/warehouse-facade/internal/lib/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.EnvProd, &buf)

	log.Debug("hidden")
	log.Info("visible", "customerID", 42)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, float64(42), entry["customerID"])
}

func TestNew_DevLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.EnvDev, &buf).Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")
}

func TestNew_LocalIsPretty(t *testing.T) {
	var buf bytes.Buffer
	logger.New(logger.EnvLocal, &buf).With("op", "test").Info("pretty line", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "pretty line")
	assert.Contains(t, out, `"op": "test"`)
	assert.Contains(t, out, `"k": "v"`)
}
