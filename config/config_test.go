package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 16, cfg.Profile.MinAge)
	assert.Equal(t, 100, cfg.Profile.MaxAge)
	assert.Equal(t, 10, cfg.Profile.MinBioLength)
	assert.Equal(t, 500, cfg.Profile.MaxBioLength)
	assert.Equal(t, RateLimitConfig{MaxRequests: 10, Window: time.Minute, Ban: 5 * time.Minute}, cfg.RateLimit)
	assert.Equal(t, 7*24*time.Hour, cfg.Backup.Retention)
	assert.False(t, cfg.Cloudinary.Enabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UNICONNECT_RATE_LIMIT_MAX_REQUESTS", "3")
	t.Setenv("UNICONNECT_DATABASE_DSN", "/data/bot.db")
	t.Setenv("UNICONNECT_CLOUDINARY_API_KEY", "k")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "/data/bot.db", cfg.Database.DSN)
	assert.Equal(t, "k", cfg.Cloudinary.APIKey)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uniconnect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rate-limit:
  window: 30s
profile:
  min-age: 18
registration:
  store: redis
`), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 10, cfg.RateLimit.MaxRequests, "unset keys keep defaults")
	assert.Equal(t, 18, cfg.Profile.MinAge)
	assert.Equal(t, "redis", cfg.Registration.Store)
}
