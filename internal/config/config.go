package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EventsBackendGoChannel = "gochannel"
	EventsBackendRedis     = "redis"
	EventsBackendKafka     = "kafka"
)

type Config struct {
	AppName         string        `env:"APP_NAME" envDefault:"go-layers"`
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	EventsBackend   string        `env:"EVENTS_BACKEND" envDefault:"gochannel"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	KafkaBrokers    []string      `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ConsumerGroup   string        `env:"CONSUMER_GROUP" envDefault:"busticket"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load lê a configuração das variáveis de ambiente.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.EventsBackend {
	case EventsBackendGoChannel, EventsBackendRedis, EventsBackendKafka:
	default:
		return Config{}, fmt.Errorf("unsupported EVENTS_BACKEND %q", cfg.EventsBackend)
	}
	return cfg, nil
}
