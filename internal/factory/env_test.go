package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/competeinator/internal/testutil"
)

func TestLoadEnvConfigDefaults(t *testing.T) {
	cfg, err := LoadEnvConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, "compete", cfg.Redis.KeyPrefix)
	assert.Nil(t, cfg.Config(testutil.NopLogger()).RedisConfig)
}

func TestLoadEnvConfigRedis(t *testing.T) {
	t.Setenv("COMPETE_STORAGE", "redis")
	t.Setenv("COMPETE_REDIS_URL", "redis://cache:6380/2")
	t.Setenv("COMPETE_REDIS_KEY_PREFIX", "league")
	t.Setenv("COMPETE_REDIS_SESSION_TTL", "1h")

	cfg, err := LoadEnvConfig()
	require.NoError(t, err)

	factoryCfg := cfg.Config(testutil.NopLogger())
	require.NotNil(t, factoryCfg.RedisConfig)
	assert.Equal(t, StorageTypeRedis, factoryCfg.StorageType)
	assert.Equal(t, "redis://cache:6380/2", factoryCfg.RedisConfig.URL)
	assert.Equal(t, "league", factoryCfg.RedisConfig.KeyPrefix)
	assert.Equal(t, time.Hour, factoryCfg.RedisConfig.SessionTTL)
	assert.Equal(t, 10, factoryCfg.RedisConfig.PoolSize)
}

func TestLoadEnvConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("COMPETE_REDIS_SESSION_TTL", "soon")

	_, err := LoadEnvConfig()
	assert.Error(t, err)
}
