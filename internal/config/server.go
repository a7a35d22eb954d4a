package config

import "fmt"

const (
	defaultServerHost = "0.0.0.0"
	defaultServerPort = 8080
)

// ServerConfig defines where the HTTP trigger endpoint listens.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		cfg.Host = defaultServerHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultServerPort
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", cfg.Port)
	}
	return nil
}

func (cfg *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
