package config

import "errors"

// KafkaConfig enables the optional win-announcement fan-out. Leaving
// brokers empty disables it.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

func (cfg *KafkaConfig) Enabled() bool {
	return len(cfg.Brokers) > 0
}

func (cfg *KafkaConfig) Validate() error {
	if cfg.Enabled() && cfg.Topic == "" {
		return errors.New("kafka topic is required when brokers are set")
	}
	return nil
}
