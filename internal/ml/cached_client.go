package ml

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/shootout-odds/internal/config"
	"github.com/yourusername/shootout-odds/internal/models"
)

const (
	defaultCacheTTL     = 10 * time.Minute
	defaultCacheMaxSize = 1000
)

// CachedModel wraps a LocationProbabilityModel with prediction caching
type CachedModel struct {
	model  models.LocationProbabilityModel
	cache  *PredictionCache
	logger *logrus.Entry
}

// NewCachedModel wraps model with cache
func NewCachedModel(model models.LocationProbabilityModel, cache *PredictionCache, logger *logrus.Logger) *CachedModel {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &CachedModel{
		model:  model,
		cache:  cache,
		logger: logger.WithField("component", "location_model"),
	}
}

// NewCachedModelFromConfig builds the HTTP classifier client behind a prediction cache
func NewCachedModelFromConfig(cfg config.LocationModelConfig, logger *logrus.Logger) *CachedModel {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	size := cfg.CacheMaxSize
	if size <= 0 {
		size = defaultCacheMaxSize
	}
	return NewCachedModel(NewHTTPClient(cfg, logger), NewPredictionCache(ttl, size), logger)
}

// Predict returns cached probabilities or asks the wrapped model
func (c *CachedModel) Predict(ctx context.Context, playerID int64, locations []models.LocationDescriptor) ([]float64, error) {
	key := NewCacheKey(playerID, locations)

	if cached, ok := c.cache.Get(key); ok {
		c.logger.WithField("cache_key", key.String()).Debug("Cache hit for prediction")
		LocationPredictionsTotal.WithLabelValues("cache").Inc()
		return cached, nil
	}

	c.logger.WithField("cache_key", key.String()).Debug("Cache miss, fetching from location model")
	probs, err := c.model.Predict(ctx, playerID, locations)
	if err != nil {
		return nil, err
	}

	if !c.cache.Set(key, probs) {
		c.logger.Debug("Prediction cache full, result not stored")
	}
	return probs, nil
}

// InvalidatePlayer drops cached predictions for a player
func (c *CachedModel) InvalidatePlayer(playerID int64) {
	c.cache.InvalidatePlayer(playerID)
}

// ClearCache clears all cached predictions
func (c *CachedModel) ClearCache() {
	c.cache.Clear()
}

// GetCacheStats returns cache statistics
func (c *CachedModel) GetCacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}

// Close closes the wrapped model when it holds resources
func (c *CachedModel) Close() error {
	if closer, ok := c.model.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
