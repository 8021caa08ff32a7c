package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestLoggerDropsCredentialFields(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	buf := &bytes.Buffer{}
	require.NoError(t, InitLoggerWithOutput("debug", "", buf))

	LogInfo("calling upstream",
		zap.String("apiKey", "secret-value"),
		zap.String("SPOONACULAR_API_KEY", "secret-value"),
		zap.String("endpoint", "findByIngredients"),
	)
	Sync()

	assert.Contains(t, buf.String(), "findByIngredients")
	assert.NotContains(t, buf.String(), "secret-value")
}

func TestLoggerNoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		LogDebug("before init")
		LogCacheMiss("memory", "key")
	})
}
