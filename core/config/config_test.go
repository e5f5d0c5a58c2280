package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://api.usaspending.gov", cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.API.PageSize)
	assert.Equal(t, 100, cfg.API.BatchSize)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Fetch.LookbackDays)
	assert.Equal(t, "output", cfg.Storage.OutputDir)
	assert.False(t, cfg.Storage.Upload.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("API_PAGE_SIZE", "250")
	t.Setenv("FETCH_MIN_AMOUNT", "900000")
	t.Setenv("FETCH_TYPE_CODES", "A,B, C")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.API.PageSize)
	assert.Equal(t, 900000.0, cfg.Fetch.MinAmount)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.Fetch.Codes())
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	t.Setenv("FETCH_END_DATE", "01/05/2025")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch.end_date")
}

func TestFetchWindow(t *testing.T) {
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)

	rolling := FetchConfig{LookbackDays: 30}
	start, end, err := rolling.Window(now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", start)
	assert.Equal(t, "2025-01-31", end)

	fixed := FetchConfig{LookbackDays: 7, EndDate: "2024-06-15"}
	start, end, err = fixed.Window(now)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-08", start)
	assert.Equal(t, "2024-06-15", end)
}

func TestCodesEmpty(t *testing.T) {
	assert.Nil(t, FetchConfig{}.Codes())
	assert.Nil(t, FetchConfig{TypeCodes: " , "}.Codes())
}
