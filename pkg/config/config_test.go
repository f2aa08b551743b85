package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 9*60, cfg.DayStartMinute)
	assert.Equal(t, 17*60, cfg.DayEndMinute)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SUNDIAL_TIMEZONE", "Europe/Berlin")
	t.Setenv("SUNDIAL_DAY_START", "480")
	t.Setenv("SUNDIAL_DAY_END", "1080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 480, cfg.DayStartMinute)
	assert.Equal(t, 1080, cfg.DayEndMinute)
}

func TestLoad_IgnoresMalformedIntEnv(t *testing.T) {
	t.Setenv("SUNDIAL_DAY_START", "morning")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9*60, cfg.DayStartMinute)
}
