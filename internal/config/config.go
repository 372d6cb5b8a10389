// Package config provides configuration management for the shootout odds engine.
package config

import (
	"fmt"

	"github.com/yourusername/shootout-odds/internal/bayes"
	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Simulation    SimulationConfig    `mapstructure:"simulation" validate:"required"`
	Prior         PriorConfig         `mapstructure:"prior" validate:"required"`
	LocationModel LocationModelConfig `mapstructure:"location_model"`
	StatsProvider StatsProviderConfig `mapstructure:"stats_provider" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Participants  []ParticipantConfig `mapstructure:"participants" validate:"dive"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Secrets       SecretsConfig       `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SimulationConfig controls the Monte-Carlo aggregation
type SimulationConfig struct {
	Trials             int    `mapstructure:"trials" validate:"gte=0"`
	Workers            int    `mapstructure:"workers" validate:"gte=0"`
	Seed               uint64 `mapstructure:"seed"`
	Model              string `mapstructure:"model" validate:"required,model"`
	MoneyBalls         []int  `mapstructure:"money_balls" validate:"dive,ballindex"`
	DewBalls           []int  `mapstructure:"dew_balls" validate:"dive,ballindex"`
	SkipMissingResults bool   `mapstructure:"skip_missing_results"`
	Verbose            bool   `mapstructure:"verbose"`
	Format             string `mapstructure:"format" validate:"omitempty,oneof=console csv json"`
	OutputPath         string `mapstructure:"output_path"`
}

// PriorConfig tunes the Beta prior built from shooting history
type PriorConfig struct {
	ScaleFactor float64          `mapstructure:"scale_factor" validate:"required,gt=0"`
	Epsilon     float64          `mapstructure:"epsilon" validate:"required,gt=0"`
	Fallback    bayes.Parameters `mapstructure:"fallback"`
}

// LocationModelConfig represents the shot-location classifier service
type LocationModelConfig struct {
	URL              string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey           string  `mapstructure:"api_key"`
	LeagueCorrection float64 `mapstructure:"league_correction" validate:"gte=0"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts    int     `mapstructure:"retry_attempts" validate:"gte=0"`
	CacheTTLSeconds  int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	CacheMaxSize     int     `mapstructure:"cache_max_size" validate:"gte=0"`
}

// StatsProviderConfig represents the historical stats API
type StatsProviderConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	APIKey             string  `mapstructure:"api_key"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts      int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	Burst              int     `mapstructure:"burst" validate:"gte=0"`
	CacheTTLMinutes    int     `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
}

// DatabaseConfig represents the optional Postgres stats cache
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
	MinConnections int    `mapstructure:"min_connections" validate:"gte=0"`
}

// ParticipantConfig lists a contestant in the static directory
type ParticipantConfig struct {
	ID   int64  `mapstructure:"id" validate:"required,gt=0"`
	Name string `mapstructure:"name" validate:"required"`
}

// ScheduleConfig controls periodic re-aggregation in watch mode
type ScheduleConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Cron       string `mapstructure:"cron" validate:"required_if=Enabled true"`
	ListenPort int    `mapstructure:"listen_port" validate:"omitempty,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// SecretsConfig points at the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region" validate:"required_if=Enabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Layout builds the ball layout. An empty money or dew list falls back to the
// standard positions for that ball type.
func (c *Config) Layout() (contest.Layout, error) {
	money := c.Simulation.MoneyBalls
	if len(money) == 0 {
		money = contest.DefaultMoneyBalls
	}
	dew := c.Simulation.DewBalls
	if len(dew) == 0 {
		dew = contest.DefaultDewBalls
	}
	return contest.NewLayout(money, dew)
}

// PriorEstimator builds the prior estimator from the prior section
func (c *Config) PriorEstimator() *bayes.PriorEstimator {
	estimator := bayes.NewPriorEstimator()
	if c.Prior.ScaleFactor > 0 {
		estimator.ScaleFactor = c.Prior.ScaleFactor
	}
	if c.Prior.Epsilon > 0 {
		estimator.Epsilon = c.Prior.Epsilon
	}
	if c.Prior.Fallback != (bayes.Parameters{}) {
		estimator.Fallback = c.Prior.Fallback
	}
	return estimator
}

// ParticipantList returns the configured static participant directory
func (c *Config) ParticipantList() []models.Participant {
	participants := make([]models.Participant, 0, len(c.Participants))
	for _, p := range c.Participants {
		participants = append(participants, models.Participant{ID: p.ID, Name: p.Name})
	}
	return participants
}
