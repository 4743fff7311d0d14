package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("REDIS_URL", "")
		t.Setenv("PSP_FEED_BASE_URL", "")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 50, cfg.Sync.PageSize)
		assert.Equal(t, time.Hour, cfg.Sync.Interval)
		assert.False(t, cfg.Sync.OnStart)
		assert.Empty(t, cfg.Postgres.URL)
		assert.False(t, cfg.Feed.Enabled())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PSP_CATALOG_ADDR", ":9090")
		t.Setenv("PSP_FEED_BASE_URL", "https://feed.example/api/")
		t.Setenv("PSP_FEED_TIMEOUT", "3s")
		t.Setenv("PSP_SYNC_INTERVAL", "15m")
		t.Setenv("PSP_SYNC_PAGE_SIZE", "100")
		t.Setenv("PSP_SYNC_ON_START", "true")
		t.Setenv("PSP_SYNC_LOCK_TTL", "2m")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, "https://feed.example/api", cfg.Feed.BaseURL)
		assert.True(t, cfg.Feed.Enabled())
		assert.Equal(t, 3*time.Second, cfg.Feed.Timeout)
		assert.Equal(t, 15*time.Minute, cfg.Sync.Interval)
		assert.Equal(t, 100, cfg.Sync.PageSize)
		assert.True(t, cfg.Sync.OnStart)
		assert.Equal(t, 2*time.Minute, cfg.Sync.LockTTL)
	})

	t.Run("invalid values are reported together", func(t *testing.T) {
		t.Setenv("PSP_SYNC_INTERVAL", "soon")
		t.Setenv("PSP_SYNC_PAGE_SIZE", "0")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PSP_SYNC_INTERVAL")
		assert.Contains(t, err.Error(), "PSP_SYNC_PAGE_SIZE must be positive")
	})
}
