package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/shootout-odds/internal/config"
	"github.com/yourusername/shootout-odds/internal/datasource"
	"github.com/yourusername/shootout-odds/internal/models"
)

// PredictRequest is the classifier request payload
type PredictRequest struct {
	PlayerID  int64                       `json:"player_id"`
	Locations []models.LocationDescriptor `json:"locations"`
}

// PredictResponse is the classifier response payload
type PredictResponse struct {
	PlayerID      int64     `json:"player_id"`
	Probabilities []float64 `json:"probabilities"`
	ModelVersion  string    `json:"model_version,omitempty"`
}

// HTTPClient calls the location classifier over JSON/HTTP
type HTTPClient struct {
	client  *datasource.RateLimitedHTTPClient
	baseURL string
	apiKey  string
	logger  *logrus.Entry
}

// NewHTTPClient creates a classifier client from configuration
func NewHTTPClient(cfg config.LocationModelConfig, logger *logrus.Logger) *HTTPClient {
	httpCfg := datasource.DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = cfg.RetryAttempts
	httpCfg.RateLimit = 50

	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &HTTPClient{
		client:  datasource.NewRateLimitedHTTPClient(httpCfg, logger),
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger.WithField("component", "location_model"),
	}
}

// Predict returns one make probability per location
func (c *HTTPClient) Predict(ctx context.Context, playerID int64, locations []models.LocationDescriptor) ([]float64, error) {
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	start := time.Now()

	body, err := json.Marshal(PredictRequest{PlayerID: playerID, Locations: locations})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		LocationModelErrorsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		LocationModelErrorsTotal.WithLabelValues("http_error").Inc()
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status %d: %s", ErrModelUnavailable, resp.StatusCode, string(msg))
		}
		return nil, fmt.Errorf("prediction request failed with status %d: %s", resp.StatusCode, string(msg))
	}

	var predictResp PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		LocationModelErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(predictResp.Probabilities) != len(locations) {
		LocationModelErrorsTotal.WithLabelValues("shape").Inc()
		return nil, fmt.Errorf("%w: got %d probabilities for %d locations",
			ErrInvalidResponse, len(predictResp.Probabilities), len(locations))
	}
	for i, p := range predictResp.Probabilities {
		if math.IsNaN(p) || p < 0 || p > 1 {
			LocationModelErrorsTotal.WithLabelValues("range").Inc()
			return nil, fmt.Errorf("%w: location %d probability %v", ErrInvalidResponse, i, p)
		}
	}

	LocationPredictionLatency.Observe(time.Since(start).Seconds())
	LocationPredictionsTotal.WithLabelValues("remote").Inc()
	c.logger.WithFields(logrus.Fields{
		"player_id":     playerID,
		"model_version": predictResp.ModelVersion,
		"duration":      time.Since(start),
	}).Debug("Location prediction received")

	return predictResp.Probabilities, nil
}

// Close releases idle connections
func (c *HTTPClient) Close() error {
	return c.client.Close()
}
