package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

	log.Component("fulfillment").Info().Int("order_id", 7).Msg("orden despachada")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "fulfillment", entry["component"])
	assert.Equal(t, float64(7), entry["order_id"])
	assert.Equal(t, "orden despachada", entry["message"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí aparece")
	assert.Contains(t, buf.String(), "sí aparece")
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	log.Debug().Msg("debug oculto")
	log.Info().Msg("info visible")
	assert.NotContains(t, buf.String(), "debug oculto")
	assert.Contains(t, buf.String(), "info visible")
}
