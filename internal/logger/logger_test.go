package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/imagestore/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelDebug, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelError, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, tracelog.LogLevelNone, GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Str("image_id", "42").Msg("fetched image")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetched image", entry["message"])
	assert.Equal(t, "imagestore", entry["service"])
	assert.Equal(t, "production", entry["environment"])
	assert.Equal(t, "42", entry["image_id"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)
	log.Info().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestLoggerService_WithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	assert.Nil(t, svc.GetApplication())
	svc.Shutdown()
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := WithTraceContext(base, nil)
	log.Info().Msg("plain")

	assert.NotContains(t, buf.String(), "trace.id")
}
