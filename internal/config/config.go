package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Goal    GoalConfig    `mapstructure:"goal"`
	Timer   TimerConfig   `mapstructure:"timer"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// GoalConfig defines the monthly attendance goal
type GoalConfig struct {
	Sessions int `mapstructure:"sessions"`
}

// TimerConfig defines the live elapsed refresh
type TimerConfig struct {
	TickInterval string `mapstructure:"tick_interval"`
}

func (c TimerConfig) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid tick_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick_interval must be positive, got %s", d)
	}
	return d, nil
}

// StorageConfig defines where completed sessions are archived
type StorageConfig struct {
	Path string `mapstructure:"path"` // ":memory:" keeps records in process memory
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ParsedLevel maps the configured level name to a zerolog level.
func (c LoggingConfig) ParsedLevel() (zerolog.Level, error) {
	if c.Level == "" {
		return zerolog.NoLevel, fmt.Errorf("logging level is required")
	}
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid logging level: %w", err)
	}
	return level, nil
}

// MetricsConfig defines the optional Prometheus endpoint
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load loads configuration from an optional file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("GYMCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Config file not found, use defaults and environment variables
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("goal.sessions", 20)

	v.SetDefault("timer.tick_interval", "1s")

	v.SetDefault("storage.path", ":memory:")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "gymclock.log")

	v.SetDefault("metrics.addr", "")
}

func validate(cfg *Config) error {
	if cfg.Goal.Sessions <= 0 {
		return fmt.Errorf("goal sessions must be positive, got %d", cfg.Goal.Sessions)
	}
	if _, err := cfg.Timer.Interval(); err != nil {
		return err
	}
	if cfg.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	if _, err := cfg.Logging.ParsedLevel(); err != nil {
		return err
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging format %q", cfg.Logging.Format)
	}
	return nil
}
