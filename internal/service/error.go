package service

import "errors"

// Error definitions for the service package.
var (
	ErrEmptyText          = errors.New("no text provided")
	ErrBackendUnavailable = errors.New("speech backend is not available")
	ErrNoStore            = errors.New("no audio store configured")
)
