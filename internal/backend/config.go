package backend

import (
	"fmt"
	"time"

	"bizdash/internal/config"
)

// SeedType selects the records a fresh backend starts with.
type SeedType string

const (
	DemoSeed  SeedType = config.SeedDemo
	EmptySeed SeedType = config.SeedEmpty
)

// IsValid checks if the seed type is supported
func (s SeedType) IsValid() bool {
	return s == DemoSeed || s == EmptySeed
}

// Config holds configuration for backend creation
type Config struct {
	Seed     SeedType
	SeedFile string // overrides Seed when set
	IDScheme string

	EventsBackend string
	AMQPURL       string
	AMQPExchange  string
	AMQPQueue     string

	CacheTTL time.Duration
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Seed:          SeedType(appConfig.Seed),
		SeedFile:      appConfig.SeedFile,
		IDScheme:      appConfig.IDScheme,
		EventsBackend: appConfig.EventsBackend,
		AMQPURL:       appConfig.AMQPURL,
		AMQPExchange:  appConfig.AMQPExchange,
		AMQPQueue:     appConfig.AMQPQueue,
		CacheTTL:      appConfig.CacheTTL,
	}
	return cfg, cfg.Validate()
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if c.SeedFile == "" && c.Seed != "" && !c.Seed.IsValid() {
		return fmt.Errorf("invalid seed type: %s", c.Seed)
	}

	switch c.IDScheme {
	case "", config.IDSchemeSequential, config.IDSchemeUUID:
	default:
		return fmt.Errorf("invalid ID scheme: %s", c.IDScheme)
	}

	switch c.EventsBackend {
	case "", config.EventsLog:
	case config.EventsAMQP:
		if c.AMQPURL == "" {
			return fmt.Errorf("AMQP URL is required for the amqp events backend")
		}
	default:
		return fmt.Errorf("invalid events backend: %s", c.EventsBackend)
	}

	return nil
}
