package http

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/backend"
	"github.com/michsethowusu/kasanoma/internal/document"
	"github.com/michsethowusu/kasanoma/internal/service"
	"github.com/michsethowusu/kasanoma/internal/voice"
)

// statusError maps domain errors to HTTP problem responses.
func statusError(msg string, err error) huma.StatusError {
	switch {
	case errors.Is(err, voice.ErrLanguageNotFound),
		errors.Is(err, voice.ErrVoiceNotFound),
		errors.Is(err, audio.ErrNotFound):
		return huma.Error404NotFound(msg, err)

	case errors.Is(err, service.ErrEmptyText),
		errors.Is(err, audio.ErrInvalidName),
		errors.Is(err, document.ErrUnsupportedType),
		errors.Is(err, document.ErrEmpty),
		errors.Is(err, document.ErrInvalidEncoding),
		errors.Is(err, document.ErrUnreadable):
		return huma.Error400BadRequest(msg, err)

	case errors.Is(err, voice.ErrEmptyCatalog),
		errors.Is(err, voice.ErrNoVoiceSelected),
		errors.Is(err, service.ErrBackendUnavailable),
		errors.Is(err, service.ErrNoStore):
		return huma.Error503ServiceUnavailable(msg, err)

	case errors.Is(err, backend.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return huma.Error504GatewayTimeout(msg, err)

	default:
		return huma.Error500InternalServerError(msg, err)
	}
}
