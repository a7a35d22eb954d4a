package config

import "errors"

// RedisConfig defines the Redis connection for the redis cursor backend.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (cfg *RedisConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("redis address is required")
	}
	return nil
}
