package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.Disabled, parseLevel("disabled"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("desconocido"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}

func TestComponent(t *testing.T) {
	l := New(Config{Env: "test", Level: "error", App: "backoffice"})
	assert.Equal(t, zerolog.ErrorLevel, l.Component("reconcile").GetLevel())
}

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", App: "backoffice", Output: &buf})

	comp := l.Component("catalogo")
	comp.Info().Str("marca", "GENERICO").Msg("creada")
	l.Debug().Msg("no se escribe")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), "una sola línea JSON")
	assert.Equal(t, "backoffice", line["app"])
	assert.Equal(t, "catalogo", line["component"])
	assert.Equal(t, "GENERICO", line["marca"])
	assert.Equal(t, "creada", line["message"])
}
