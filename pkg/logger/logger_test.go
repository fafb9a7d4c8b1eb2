package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConNivelYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "WARN", Output: &buf})

	l.Info().Msg("descartado")
	l.Component("ledger").Error().Bool("critical", true).Msg("divergencia")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "ledger", line["component"])
	assert.Equal(t, true, line["critical"])
	assert.Equal(t, "divergencia", line["message"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("nada") })
}
