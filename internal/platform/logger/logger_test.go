package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/nutrisnap/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "DEBUG", "Info"}
	for _, level := range levels {
		logger := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NotNil(t, logger, "Setup should return a logger for level %q", level)
	}
}

func TestSetupFallsBackOnInvalidLevel(t *testing.T) {
	logger := Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
	assert.NotNil(t, logger)
}
