package backend

import "errors"

// Error definitions for the backend package.
var (
	ErrNotFound          = errors.New("backend not found in registry")
	ErrAlreadyRegistered = errors.New("backend is already registered in the registry")
	ErrBinaryNotFound    = errors.New("backend binary not found")
	ErrTimeout           = errors.New("backend operation timed out")
	ErrExecutionFailed   = errors.New("backend execution failed")
	ErrNoOutput          = errors.New("backend produced no output")
)
