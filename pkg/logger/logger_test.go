package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-gst/pkg/logger"
)

func TestComponent_EtiquetaJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

	log.Component("pdf").Info().Str("invoice_id", "inv-1").Msg("render")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pdf", entry["component"])
	assert.Equal(t, "inv-1", entry["invoice_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "ruidoso", Output: &buf})

	log.Debug().Msg("oculto")
	assert.Zero(t, buf.Len())

	log.Info().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
