package voice

import "errors"

// Error definitions for the voice package.
var (
	ErrLanguageNotFound = errors.New("language not found in catalog")
	ErrVoiceNotFound    = errors.New("voice not found in catalog")
	ErrEmptyCatalog     = errors.New("no voices discovered")
	ErrNoVoiceSelected  = errors.New("no voice selected")
)
