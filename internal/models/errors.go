package models

import "errors"

// Custom errors
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidContestResult = errors.New("contest result makes exceed attempts or are negative")
	ErrInvalidPlayerID      = errors.New("invalid player ID")
)
