package logger

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "production", "warn")

	log.Info().Msg("hidden")
	log.Warn().Str("plate", "ABC1234").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "ABC1234", line["plate"])
	assert.Equal(t, "fleet-timeline-service", line["service"])
}

func TestNewWithWriter_LevelFallback(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewWithWriter(&bytes.Buffer{}, "development", "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewWithWriter(&bytes.Buffer{}, "production", "nonsense").GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, NewWithWriter(&bytes.Buffer{}, "production", "ERROR").GetLevel())
}
