package config

import "fmt"

const (
	CursorBackendMongo = "mongo"
	CursorBackendRedis = "redis"
)

// CursorConfig selects where the (round, intra) checkpoint is persisted.
type CursorConfig struct {
	Backend string `mapstructure:"backend"`
}

func (cfg *CursorConfig) Validate() error {
	switch cfg.Backend {
	case "":
		cfg.Backend = CursorBackendMongo
	case CursorBackendMongo, CursorBackendRedis:
	default:
		return fmt.Errorf("cursor backend %q does not exist. should be one of {%s, %s}",
			cfg.Backend, CursorBackendMongo, CursorBackendRedis)
	}
	return nil
}
