package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/shootout-odds/internal/config"
)

// NewStatsClientFromConfig builds the rate-limited stats client described by cfg
func NewStatsClientFromConfig(cfg config.StatsProviderConfig, logger *logrus.Logger) (*StatsClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("stats provider base_url is required")
	}

	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = cfg.RetryAttempts
	if cfg.RateLimitPerSecond > 0 {
		httpCfg.RateLimit = cfg.RateLimitPerSecond
	}
	if cfg.Burst > 0 {
		httpCfg.Burst = cfg.Burst
	}

	return NewStatsClient(NewRateLimitedHTTPClient(httpCfg, logger), cfg.BaseURL, cfg.APIKey, logger), nil
}
