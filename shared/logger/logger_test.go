package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"homestay/config"
	"homestay/shared/constant"
	"homestay/shared/logger"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productionConfig(level string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = level
	cfg.App.Name = "homestay"

	return cfg
}

func TestSetLogLevel(t *testing.T) {
	original := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(original) })

	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "empty falls back to trace", level: "", expected: zerolog.TraceLevel},
		{name: "unknown falls back to trace", level: "loud", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestSetOutput_ProductionWritesJSON(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	buf := &bytes.Buffer{}
	logger.SetOutput(productionConfig("info"), buf)

	log.Warn().Str("room", "Room A").Msg("conflict")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "homestay", line["app"])
	assert.Equal(t, "Room A", line["room"])
	assert.Equal(t, "conflict", line["message"])
}

func TestCtx_AddsRequestAndUser(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	buf := &bytes.Buffer{}
	logger.SetOutput(productionConfig("info"), buf)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "7")

	logger.Ctx(ctx).Warn().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "7", line["user_id"])
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	buf := &bytes.Buffer{}
	log.Logger = zerolog.New(buf)

	logger.ErrorWithStack(errors.New("insert failed"))

	assert.Contains(t, buf.String(), "insert failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestInitLogger(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	assert.NotPanics(t, logger.InitLogger)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}
