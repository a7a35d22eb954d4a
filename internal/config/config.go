package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Events   EventsConfig   `mapstructure:"events"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Notifier NotifierConfig `mapstructure:"notifier"`
	Cursor   CursorConfig   `mapstructure:"cursor"`
	Db       DbConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Server.Validate(); err != nil {
		return err
	}
	if err := cfg.Events.Validate(); err != nil {
		return err
	}
	if err := cfg.Webhook.Validate(); err != nil {
		return err
	}
	if err := cfg.Notifier.Validate(); err != nil {
		return err
	}
	if err := cfg.Cursor.Validate(); err != nil {
		return err
	}
	switch cfg.Cursor.Backend {
	case CursorBackendMongo:
		if err := cfg.Db.Validate(); err != nil {
			return err
		}
	case CursorBackendRedis:
		if err := cfg.Redis.Validate(); err != nil {
			return err
		}
	}
	if err := cfg.Kafka.Validate(); err != nil {
		return err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}
	return nil
}

// New loads the config file at cfgPath and applies environment overrides:
// any key present in the file can be overridden, e.g. WEBHOOK_URL for
// webhook.url or NOTIFIER_DRY_RUN for notifier.dry-run.
func New(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
