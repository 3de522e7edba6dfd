package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-classification-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("INFO"))
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel("WARNING"))
	assert.Equal(t, zerolog.ErrorLevel, logger.ParseLevel(" Error "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("desconocido"))
}

func TestNamed_AgregaComponenteEnJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "INFO", Output: &buf})

	log.Named("postgres").Info().Str("basic_ind_code", "A1a1").Msg("consulta")
	log.Debug().Msg("no debe salir")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "postgres", line["component"])
	assert.Equal(t, "A1a1", line["basic_ind_code"])
	assert.Equal(t, "consulta", line["message"])
	assert.Equal(t, "info", line["level"])
}
