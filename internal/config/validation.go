package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"

	"github.com/yourusername/shootout-odds/internal/bayes"
	"github.com/yourusername/shootout-odds/internal/contest"
	"github.com/yourusername/shootout-odds/internal/probability"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("model", validateModel)
	_ = v.RegisterValidation("ballindex", validateBallIndex)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateModel validates the probability model name
func validateModel(fl validator.FieldLevel) bool {
	_, err := probability.ParseModel(fl.Field().String())
	return err == nil
}

// validateBallIndex validates a rack slot index
func validateBallIndex(fl validator.FieldLevel) bool {
	idx := fl.Field().Int()
	return idx >= 0 && idx < contest.SlotCount
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// Money and dew positions must form a valid layout
	if _, err := cfg.Layout(); err != nil {
		return fmt.Errorf("invalid ball layout: %w", err)
	}

	// A configured fallback prior must be usable by the Beta sampler
	if cfg.Prior.Fallback != (bayes.Parameters{}) {
		if err := cfg.Prior.Fallback.Validate(); err != nil {
			return fmt.Errorf("invalid prior fallback: %w", err)
		}
	}

	model, err := probability.ParseModel(cfg.Simulation.Model)
	if err != nil {
		return err
	}
	if model == probability.ModelLocation && cfg.LocationModel.URL == "" {
		return fmt.Errorf("location_model.url is required when simulation.model is %q", cfg.Simulation.Model)
	}

	if cfg.Schedule.Enabled {
		if _, err := cron.ParseStandard(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("invalid schedule cron %q: %w", cfg.Schedule.Cron, err)
		}
	}

	// Validate production environment requirements
	if cfg.IsProduction() && cfg.Database.Enabled && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	// Validate connection pool settings
	if cfg.Database.MinConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("min_connections cannot exceed max_connections")
	}

	seen := make(map[int64]bool, len(cfg.Participants))
	for _, p := range cfg.Participants {
		if seen[p.ID] {
			return fmt.Errorf("participant id %d listed more than once", p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required", "required_if":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "model":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: bayesian, location, got '%v'\n", field, value)
		case "ballindex":
			errMsg += fmt.Sprintf("- Field '%s' must be a slot between 0 and %d, got '%v'\n", field, contest.SlotCount-1, value)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		if isTestCredential(cfg.StatsProvider.APIKey) {
			return fmt.Errorf("production environment should not use a placeholder stats API key")
		}
		if cfg.Simulation.Seed != 0 {
			return fmt.Errorf("production environment should not pin the simulation seed")
		}
	}

	return nil
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
