package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Ramsey-B/thistle/pkg/database"
	"github.com/Ramsey-B/thistle/pkg/kafka"
)

// Config holds site settings: where the catalog database lives and whether
// merge events are published. Values come from the environment (with .env
// support) and can be overlaid by an optional YAML file.
type Config struct {
	AppName    string `env:"APP_NAME" env-default:"thistle" yaml:"app_name"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" yaml:"log_level"`
	PrettyLogs bool   `env:"PRETTY_LOGS" env-default:"true" yaml:"pretty_logs"`

	// Catalog database (PostgreSQL)
	DatabaseDriver          string        `env:"DB_DRIVER" env-default:"postgres" yaml:"db_driver"`
	DatabaseHost            string        `env:"DB_HOST" env-default:"localhost" yaml:"db_host"`
	DatabasePort            string        `env:"DB_PORT" env-default:"5432" yaml:"db_port"`
	DatabaseUserName        string        `env:"DB_USER_NAME" env-default:"" yaml:"db_user_name"`
	DatabasePassword        string        `env:"DB_PASSWORD" env-default:"" yaml:"db_password"`
	DatabaseName            string        `env:"DB_NAME" env-default:"catalog" yaml:"db_name"`
	DatabaseSSLMode         string        `env:"DB_SQL_MODE" env-default:"disable" yaml:"db_ssl_mode"`
	DatabaseMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"5" yaml:"db_max_open_conns"`
	DatabaseMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"2" yaml:"db_max_idle_conns"`
	DatabaseConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s" yaml:"db_conn_max_lifetime"`

	// Kafka Producer settings (record.merged events)
	KafkaEventsEnabled bool     `env:"KAFKA_EVENTS_ENABLED" env-default:"false" yaml:"kafka_events_enabled"`
	KafkaBrokers       []string `env:"KAFKA_BROKERS" env-default:"localhost:9092" yaml:"kafka_brokers"`
	KafkaOutputTopic   string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"record-events" yaml:"kafka_output_topic"`
	KafkaBatchSize     int      `env:"KAFKA_BATCH_SIZE" env-default:"100" yaml:"kafka_batch_size"`
	KafkaBatchTimeout  int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100" yaml:"kafka_batch_timeout_ms"`
	KafkaRequiredAcks  int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1" yaml:"kafka_required_acks"`
	KafkaCompression   string   `env:"KAFKA_COMPRESSION" env-default:"snappy" yaml:"kafka_compression"`
}

// Load builds the Config from the environment, then overlays the YAML file
// at path when one is given.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to bind environment config: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// DatabaseConfig maps the catalog database settings into the database layer.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Driver:          c.DatabaseDriver,
		Host:            c.DatabaseHost,
		Port:            c.DatabasePort,
		UserName:        c.DatabaseUserName,
		Password:        c.DatabasePassword,
		Name:            c.DatabaseName,
		SSLMode:         c.DatabaseSSLMode,
		MaxOpenConns:    c.DatabaseMaxOpenConns,
		MaxIdleConns:    c.DatabaseMaxIdleConns,
		ConnMaxLifetime: c.DatabaseConnMaxLifetime,
	}
}

// ProducerConfig maps the Kafka settings into the producer.
func (c *Config) ProducerConfig() kafka.ProducerConfig {
	return kafka.ProducerConfig{
		Brokers:      c.KafkaBrokers,
		Topic:        c.KafkaOutputTopic,
		BatchSize:    c.KafkaBatchSize,
		BatchTimeout: time.Duration(c.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: c.KafkaRequiredAcks,
		Compression:  c.KafkaCompression,
	}
}
