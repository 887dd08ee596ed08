// Package config loads rbtreectl/arena configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidShardCount  = errors.New("shard count must be positive")
	ErrInvalidHibernation = errors.New("hibernation threshold must be non-negative")
	ErrInvalidServerPort  = errors.New("invalid server port")
	ErrInvalidLogLevel    = errors.New("invalid log level")
)

// Default configuration values.
const (
	defaultShardCount           = 4
	defaultHibernationThreshold = 10000
	defaultServerPort           = 9090
	maxServerPort               = 65535
)

// Config holds all rbtreectl configuration.
type Config struct {
	Arena   ArenaConfig   `mapstructure:"arena"`
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Serve   ServeConfig   `mapstructure:"serve"`
}

// ArenaConfig controls the arena allocator a built tree is backed by.
type ArenaConfig struct {
	ShardCount           int `mapstructure:"shard_count"`
	HibernationThreshold int `mapstructure:"hibernation_threshold"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	OTLPEndpoint string        `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool          `mapstructure:"otlp_insecure"`
	SampleRatio  float64       `mapstructure:"sample_ratio"`
	ShutdownWait time.Duration `mapstructure:"shutdown_wait"`
}

// ServeConfig controls the rbtreectl serve subcommand's HTTP listener.
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load reads configuration from configPath (or the default search path if
// empty), applies RBTREE_-prefixed environment overrides, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("rbtreectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/rbtree")
	}

	v.SetEnvPrefix("RBTREE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("arena.shard_count", defaultShardCount)
	v.SetDefault("arena.hibernation_threshold", defaultHibernationThreshold)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("tracing.otlp_endpoint", "")
	v.SetDefault("tracing.otlp_insecure", false)
	v.SetDefault("tracing.sample_ratio", 0.0)
	v.SetDefault("tracing.shutdown_wait", "5s")

	v.SetDefault("serve.host", "0.0.0.0")
	v.SetDefault("serve.port", defaultServerPort)
}

func validate(cfg *Config) error {
	if cfg.Arena.ShardCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidShardCount, cfg.Arena.ShardCount)
	}

	if cfg.Arena.HibernationThreshold < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHibernation, cfg.Arena.HibernationThreshold)
	}

	if cfg.Serve.Port <= 0 || cfg.Serve.Port > maxServerPort {
		return fmt.Errorf("%w: %d", ErrInvalidServerPort, cfg.Serve.Port)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	return nil
}
