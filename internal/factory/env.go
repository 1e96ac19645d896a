package factory

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	redisstorage "github.com/mcoot/competeinator/internal/storage/redis"
)

// EnvPrefix is prepended to every environment variable the binaries read
const EnvPrefix = "COMPETE_"

// EnvConfig is the environment form of Config
type EnvConfig struct {
	StorageType string              `env:"STORAGE" envDefault:"memory"`
	Redis       redisstorage.Config `envPrefix:"REDIS_"`
}

// LoadEnvConfig reads COMPETE_STORAGE and COMPETE_REDIS_* into an EnvConfig
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Config converts the environment settings into a factory Config
func (e EnvConfig) Config(logger *slog.Logger) Config {
	cfg := Config{
		Logger:      logger,
		StorageType: e.StorageType,
	}
	if e.StorageType == StorageTypeRedis {
		redisCfg := e.Redis
		cfg.RedisConfig = &redisCfg
	}
	return cfg
}
