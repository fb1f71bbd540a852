package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	config, err := NewConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Endpoint:           "localhost:8090",
		LogLevel:           "error",
		Env:                "production",
		PlatformFeePercent: "15",
		GatewayCurrency:    "usd",
		GatewayTimeout:     10 * time.Second,
		PayoutQueue:        "seller_payouts",
		PayoutWorkers:      2,
	}, config)
}

func TestNewConfigEnvironmentOverridesFlags(t *testing.T) {
	t.Setenv("RUN_ADDRESS", ":9000")
	t.Setenv("PLATFORM_FEE_PERCENT", "12.5")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("PAYOUT_WORKERS", "4")

	config, err := NewConfig([]string{"-a", ":8000", "-f", "20", "-d", "postgres://localhost/orders"})
	require.NoError(t, err)

	assert.Equal(t, ":9000", config.Endpoint)
	assert.Equal(t, "12.5", config.PlatformFeePercent)
	assert.Equal(t, "postgres://localhost/orders", config.DSN)
	assert.Equal(t, 3*time.Second, config.GatewayTimeout)
	assert.Equal(t, 4, config.PayoutWorkers)
}

func TestNewConfigValidation(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("PAYOUT_WORKERS", "0")

	_, err := NewConfig([]string{"-g", "https://gateway.example"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "LOG_LEVEL is invalid")
	assert.Contains(t, err.Error(), "GATEWAY_SECRET_KEY is required when GATEWAY_URL is set")
	assert.Contains(t, err.Error(), "PAYOUT_WORKERS must be at least 1")
}

func TestNewConfigUnknownFlag(t *testing.T) {
	_, err := NewConfig([]string{"-unknown"})
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAYOUT_QUEUE=dotenv_payouts\n"), 0o600))

	t.Setenv("PAYOUT_QUEUE", "")
	os.Unsetenv("PAYOUT_QUEUE")

	loadDotEnv(path)
	loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))

	config, err := NewConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "dotenv_payouts", config.PayoutQueue)
}
