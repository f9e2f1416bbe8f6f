package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, splitList(" https://a.example.com, ,https://b.example.com "))
	assert.Nil(t, splitList(""))
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_CORS_ORIGINS", "https://app.example.com")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("JWT_REFRESH_EXPIRY", "not-a-duration")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.App.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpiry)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestAppConfig_Location(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, "Asia/Jakarta", AppConfig{Timezone: "Asia/Jakarta"}.Location().String())
}
