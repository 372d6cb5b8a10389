package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "SHOOTOUT"
	defaultConfigPath = "config/config.yaml"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(envPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "shootout-odds")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("simulation.trials", 1000)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.model", "bayesian")
	v.SetDefault("simulation.format", "console")

	v.SetDefault("prior.scale_factor", 0.5)
	v.SetDefault("prior.epsilon", 0.001)
	v.SetDefault("prior.fallback.alpha_reg", 3)
	v.SetDefault("prior.fallback.beta_reg", 7)
	v.SetDefault("prior.fallback.alpha_dew", 1)
	v.SetDefault("prior.fallback.beta_dew", 4)

	v.SetDefault("location_model.league_correction", 1.25)
	v.SetDefault("location_model.timeout_seconds", 10)
	v.SetDefault("location_model.retry_attempts", 3)
	v.SetDefault("location_model.cache_ttl_seconds", 3600)
	v.SetDefault("location_model.cache_max_size", 1000)

	v.SetDefault("stats_provider.base_url", "http://localhost:8080")
	v.SetDefault("stats_provider.timeout_seconds", 10)
	v.SetDefault("stats_provider.retry_attempts", 3)
	v.SetDefault("stats_provider.rate_limit_per_second", 5)
	v.SetDefault("stats_provider.burst", 5)
	v.SetDefault("stats_provider.cache_ttl_minutes", 1440)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 1)

	v.SetDefault("schedule.cron", "@every 15m")
	v.SetDefault("schedule.listen_port", 8081)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// ReloadFromEnv reloads the configuration when SHOOTOUT_CONFIG_PATH points at a file
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv(envPrefix + "_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}

	return nil
}
