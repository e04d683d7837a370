package config_test

import (
	"testing"

	"peerlink/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STATIC_DIR", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")

	cfg := config.FromEnv()

	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.Equal(t, config.DefaultStaticDir, cfg.StaticDir)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STATIC_DIR", "/srv/www")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("REDIS_DB", "3")

	cfg := config.FromEnv()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "/srv/www", cfg.StaticDir)
	assert.Equal(t, "localhost:6380", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestFromEnv_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := config.FromEnv()

	assert.Equal(t, 0, cfg.RedisDB)
}
