package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Hermes    HermesConfig    `yaml:"hermes"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Broker    BrokerConfig    `yaml:"broker"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	MetricsPort        int      `yaml:"metrics_port"`
	AdminToken         string   `yaml:"admin_token"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// OptimizerConfig holds the request limits and solver options. These are the
// settings applied live when the config file changes.
type OptimizerConfig struct {
	MaxCapacity      int  `yaml:"max_capacity"`
	MaxItems         int  `yaml:"max_items"`
	MaxNameLength    int  `yaml:"max_name_length"`
	MaxTableCells    int  `yaml:"max_table_cells"`
	SortByEfficiency bool `yaml:"sort_by_efficiency"`
}

type BrokerConfig struct {
	StatsIntervalMs int `yaml:"stats_interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) StatsInterval() time.Duration {
	return time.Duration(c.Broker.StatsIntervalMs) * time.Millisecond
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               8000,
			MetricsPort:        8001,
			RateLimitPerMinute: 120,
			CORSAllowedOrigins: []string{"*"},
		},
		Optimizer: OptimizerConfig{
			MaxCapacity:      1_000_000_000,
			MaxItems:         100,
			MaxNameLength:    50,
			MaxTableCells:    50_000_000,
			SortByEfficiency: true,
		},
		Broker: BrokerConfig{
			StatsIntervalMs: 30000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every setting that would make the service unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}
	if c.Server.MetricsPort <= 0 {
		errs = append(errs, fmt.Errorf("server.metrics_port must be positive, got %d", c.Server.MetricsPort))
	}
	if c.Server.RateLimitPerMinute <= 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit_per_minute must be positive, got %d", c.Server.RateLimitPerMinute))
	}
	if c.Optimizer.MaxCapacity <= 0 {
		errs = append(errs, fmt.Errorf("optimizer.max_capacity must be positive, got %d", c.Optimizer.MaxCapacity))
	}
	if c.Optimizer.MaxItems <= 0 {
		errs = append(errs, fmt.Errorf("optimizer.max_items must be positive, got %d", c.Optimizer.MaxItems))
	}
	if c.Optimizer.MaxNameLength <= 0 {
		errs = append(errs, fmt.Errorf("optimizer.max_name_length must be positive, got %d", c.Optimizer.MaxNameLength))
	}
	if c.Optimizer.MaxTableCells < 0 {
		errs = append(errs, fmt.Errorf("optimizer.max_table_cells must not be negative, got %d", c.Optimizer.MaxTableCells))
	}
	if c.Broker.StatsIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("broker.stats_interval_ms must be positive, got %d", c.Broker.StatsIntervalMs))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORTFOLIO_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("PORTFOLIO_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("PORTFOLIO_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("PORTFOLIO_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("PORTFOLIO_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("PORTFOLIO_MAX_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Optimizer.MaxCapacity = n
		}
	}
	if v := os.Getenv("PORTFOLIO_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Optimizer.MaxItems = n
		}
	}
	if v := os.Getenv("PORTFOLIO_MAX_TABLE_CELLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Optimizer.MaxTableCells = n
		}
	}
	if v := os.Getenv("PORTFOLIO_SORT_BY_EFFICIENCY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Optimizer.SortByEfficiency = b
		}
	}
	if v := os.Getenv("PORTFOLIO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PORTFOLIO_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
