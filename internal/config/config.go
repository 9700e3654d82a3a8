package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	defaultSlotStepMinutes = 30
	defaultCacheTTLSeconds = 60
	defaultClientTimeout   = 15
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Booking  BookingConfig  `toml:"booking"`
	Client   ClientConfig   `toml:"client"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN returns a lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL returns the postgres:// form used by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type CatalogConfig struct {
	// CacheTTL is in seconds.
	CacheTTL int `toml:"cache_ttl"`
}

// HoursWindow is one opening window of a weekday; Weekday follows time.Weekday (0 = Sunday).
type HoursWindow struct {
	Weekday int    `toml:"weekday"`
	Open    string `toml:"open"`
	Close   string `toml:"close"`
}

type BookingConfig struct {
	SlotStepMinutes  int           `toml:"slot_step_minutes"`
	MinNoticeMinutes int           `toml:"min_notice_minutes"`
	DefaultHours     []HoursWindow `toml:"default_hours"`
}

type ClientConfig struct {
	BaseURL string `toml:"base_url"`
	// Timeout is in seconds.
	Timeout int `toml:"timeout"`
}

// Load reads the TOML file at path, then applies overrides from the
// environment. A .env file next to the process is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = defaultSlotStepMinutes
	}
	if c.Catalog.CacheTTL == 0 {
		c.Catalog.CacheTTL = defaultCacheTTLSeconds
	}
	if c.Client.Timeout == 0 {
		c.Client.Timeout = defaultClientTimeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "appointment.scheduled"
	}
}

// Validate checks values that would otherwise fail at runtime.
func (c *Config) Validate() error {
	if c.Booking.SlotStepMinutes < 0 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}
	for i, w := range c.Booking.DefaultHours {
		if w.Weekday < 0 || w.Weekday > 6 {
			return fmt.Errorf("%w: booking.default_hours[%d].weekday must be 0..6", ErrInvalidConfig, i)
		}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}
	return nil
}
