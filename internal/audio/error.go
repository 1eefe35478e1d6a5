package audio

import "errors"

// Error definitions for the audio package.
var (
	ErrInvalidName = errors.New("invalid audio file name")
	ErrNotFound    = errors.New("audio file not found")
	ErrEmpty       = errors.New("audio is empty")
	ErrInvalidWAV  = errors.New("not a valid WAV file")
)
