package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/pm10-etl/internal/domain"
)

// Config holds all job settings, populated from environment variables.
type Config struct {
	InputDir         string
	OutputFile       string
	PollutantCode    string
	ValiditySentinel string
	StrictNames      bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Optional Kafka mirror of the consolidated records.
	KafkaBrokers   []string
	KafkaSinkTopic string
	BatchSize      int
}

// KafkaEnabled reports whether records should also be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	strictNames, err := parseBool("STRICT_NAMES", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		InputDir:         sharedcfg.EnvOrDefault("INPUT_DIR", "Podatki_Raw"),
		OutputFile:       sharedcfg.EnvOrDefault("OUTPUT_FILE", "pm10_data.csv"),
		PollutantCode:    sharedcfg.EnvOrDefault("POLLUTANT_CODE", domain.DefaultPollutantCode),
		ValiditySentinel: sharedcfg.EnvOrDefault("VALIDITY_SENTINEL", domain.DefaultValiditySentinel),
		StrictNames:      strictNames,
		HTTPAddr:         os.Getenv("HTTP_ADDR"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		KafkaBrokers:     brokers,
		KafkaSinkTopic:   sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "pm10-measurements"),
		BatchSize:        batchSize,
	}

	if cfg.InputDir == "" {
		return nil, errors.New("INPUT_DIR is required")
	}
	if cfg.OutputFile == "" {
		return nil, errors.New("OUTPUT_FILE is required")
	}
	if cfg.PollutantCode == "" {
		return nil, errors.New("POLLUTANT_CODE is required")
	}
	if cfg.ValiditySentinel == "" {
		return nil, errors.New("VALIDITY_SENTINEL is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
