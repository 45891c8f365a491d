package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotStarted      = errors.New("service not started")
)
