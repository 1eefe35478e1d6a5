package backend

import (
	"context"
	"io"
	"time"
)

// BackendProvider is a string identifier for a backend provider.
type BackendProvider string

const (
	BackendProviderPiper BackendProvider = "piper"
)

// Backend defines the core interface for all synthesis backends.
type Backend interface {
	// Provider returns the backend identifier.
	Provider() BackendProvider

	// Infer executes synthesis and returns the complete result.
	Infer(ctx context.Context, req *Request) (*Response, error)

	// Close cleans up resources.
	Close() error
}

// Request encapsulates all parameters for a synthesis call.
type Request struct {
	// ModelPath is the path to the voice model file.
	ModelPath string

	// Input is the text to speak.
	Input io.Reader

	// Parameters contains backend-specific synthesis parameters.
	Parameters map[string]any
}

// Response contains the result of a synthesis operation.
type Response struct {
	// Output is the WAV audio.
	Output io.Reader

	// Metadata contains backend-specific information.
	Metadata *ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	Provider        BackendProvider `json:"provider"`
	Model           string          `json:"model"`
	Timestamp       time.Time       `json:"timestamp"`
	Elapsed         float64         `json:"elapsed_seconds"`
	OutputBytes     int64           `json:"output_bytes"`
	SampleRate      int             `json:"sample_rate,omitempty"`
	Channels        int             `json:"channels,omitempty"`
	AudioDuration   float64         `json:"audio_duration_seconds,omitempty"`
	BackendSpecific map[string]any  `json:"backend_specific,omitempty"`
}
