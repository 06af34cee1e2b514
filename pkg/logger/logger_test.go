package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/beneflow/beneflow-api/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelInvalido_FallbackInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "verboso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelVacio_FallbackInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestNewNop_DescartaTodo(t *testing.T) {
	l := logger.NewNop()
	assert.Equal(t, zerolog.Disabled, l.Zerolog().GetLevel())
}
