// Package ml provides the client for the shot-location classifier service.
package ml

import "errors"

var (
	// ErrModelUnavailable indicates the classifier service is unreachable
	ErrModelUnavailable = errors.New("location model unavailable")

	// ErrInvalidResponse indicates an unexpected response from the classifier service
	ErrInvalidResponse = errors.New("invalid response from location model")

	// ErrNoLocations indicates a prediction request without locations
	ErrNoLocations = errors.New("no locations to predict")
)
