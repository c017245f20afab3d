package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := ConfigFromEnv()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "sicknote-hub", cfg.ServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTLPEndpoint)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_SERVICE_NAME", "sicknote-hub-dev")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4318")

	cfg := ConfigFromEnv()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "sicknote-hub-dev", cfg.ServiceName)
	assert.Equal(t, "http://collector:4318", cfg.OTLPEndpoint)
}

func TestInitProvider_DisabledIsNoOp(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
