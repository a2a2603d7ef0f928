package domain

import "errors"

var (
	ErrNotFound           = errors.New("team not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrMalformedRequest   = errors.New("team name is required")
)
