package config_test

import (
	"testing"

	"github.com/UnknownOlympus/geosketch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadFromEnv(t *testing.T) {
	t.Setenv("GEOSKETCH_ENV", "local")
	t.Setenv("GEOSKETCH_SOURCE", "postgres")
	t.Setenv("GEOSKETCH_LIMIT", "-1")
	t.Setenv("GEOSKETCH_WIDTH", "80")
	t.Setenv("GEOSKETCH_HEIGHT", "40")
	t.Setenv("GEOSKETCH_BOUNDS", "LEGACY")
	t.Setenv("GEOSKETCH_FRAME", "true")
	t.Setenv("GEOSKETCH_DB_HOST", "testHost")
	t.Setenv("GEOSKETCH_DB_PORT", "12345")
	t.Setenv("GEOSKETCH_DB_USER", "admin")
	t.Setenv("GEOSKETCH_DB_PASSWORD", "adminpass")
	t.Setenv("GEOSKETCH_DB_NAME", "testName")
	t.Setenv("GEOSKETCH_DB_TABLE", "postcodes")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "postgres", cfg.Source)
	assert.Equal(t, -1, cfg.Limit)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
	assert.Equal(t, config.BoundsLegacy, cfg.Bounds)
	assert.True(t, cfg.Frame)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, "postcodes", cfg.Database.Table)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Source)
	assert.Equal(t, "data/ukpostcodes.csv.zip", cfg.ArchivePath)
	assert.Equal(t, 1000000, cfg.Limit)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 120, cfg.Height)
	assert.Equal(t, config.BoundsExact, cfg.Bounds)
	assert.False(t, cfg.Frame)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, "geo_locations", cfg.Database.Table)
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		msg  string
	}{
		{"limit", "GEOSKETCH_LIMIT", "failed to parse limit from configuration, must be an integer"},
		{"width", "GEOSKETCH_WIDTH", "failed to parse width from configuration, must be an integer"},
		{"height", "GEOSKETCH_HEIGHT", "failed to parse height from configuration, must be an integer"},
		{"frame", "GEOSKETCH_FRAME", "failed to parse frame from configuration, must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, "error_value")

			cfg, err := config.Load()

			require.Nil(t, cfg)
			require.EqualError(t, err, tt.msg)
		})
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Setenv("GEOSKETCH_LIMIT", "0")
	t.Setenv("GEOSKETCH_WIDTH", "-3")
	t.Setenv("GEOSKETCH_BOUNDS", "fuzzy")

	cfg, err := config.Load()

	require.Nil(t, cfg)
	require.ErrorContains(t, err, "limit must be -1 or positive, got 0")
	require.ErrorContains(t, err, "grid dimensions must be positive, got -3x120")
	require.ErrorContains(t, err, `bounds must be "exact" or "legacy", got "fuzzy"`)
}
