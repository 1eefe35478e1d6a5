package http

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/backend"
	"github.com/michsethowusu/kasanoma/internal/document"
	"github.com/michsethowusu/kasanoma/internal/service"
)

type (
	SynthesizeRequestDTO struct {
		Text       string         `json:"text" minLength:"1"`
		Voice      string         `json:"voice,omitempty"`
		Language   string         `json:"language,omitempty"`
		AutoDetect *bool          `json:"auto_detect,omitempty" doc:"Pick the language from the text's script; defaults to true"`
		Parameters map[string]any `json:"parameters,omitempty"`
	}

	SynthesizeResponseDTO struct {
		Success   bool                      `json:"success"`
		AudioFile string                    `json:"audio_file"`
		AudioURL  string                    `json:"audio_url"`
		Language  string                    `json:"language"`
		Voice     string                    `json:"voice"`
		Bytes     int64                     `json:"bytes"`
		Message   string                    `json:"message,omitempty"`
		Metadata  *backend.ResponseMetadata `json:"metadata,omitempty"`
	}
)

type (
	SynthesizeInput struct {
		Body SynthesizeRequestDTO
	}

	SynthesizeOutput struct {
		Body SynthesizeResponseDTO
	}

	UploadInput struct {
		RawBody huma.MultipartFormFiles[struct {
			File       huma.FormFile `form:"file" required:"true"`
			Voice      string        `form:"voice"`
			Language   string        `form:"language"`
			AutoDetect string        `form:"auto_detect"`
		}]
	}

	AudioInput struct {
		Filename string `path:"filename"`
	}

	AudioOutput struct {
		ContentType string `header:"Content-Type"`
		Body        []byte
	}
)

// TTSHandler handles HTTP requests for TTS.
type TTSHandler struct {
	service    *service.TTS
	store      *audio.Store
	extensions []string
}

// NewTTSHandler creates a new TTSHandler instance. extensions limits the
// document types accepted for upload.
func NewTTSHandler(api huma.API, service *service.TTS, store *audio.Store, maxUploadBytes int64, extensions []string) *TTSHandler {
	h := &TTSHandler{service: service, store: store, extensions: extensions}

	huma.Register(api, huma.Operation{
		OperationID:   "synthesize",
		Method:        http.MethodPost,
		Path:          "/api/tts",
		Summary:       "Synthesize speech from text",
		Tags:          []string{"tts"},
		DefaultStatus: http.StatusOK,
	}, h.handleSynthesize)

	huma.Register(api, huma.Operation{
		OperationID:   "synthesize-upload",
		Method:        http.MethodPost,
		Path:          "/api/upload",
		Summary:       "Synthesize speech from an uploaded document",
		Tags:          []string{"tts"},
		MaxBodyBytes:  maxUploadBytes,
		DefaultStatus: http.StatusOK,
	}, h.handleUpload)

	huma.Register(api, huma.Operation{
		OperationID: "get-audio",
		Method:      http.MethodGet,
		Path:        "/api/audio/{filename}",
		Summary:     "Download synthesized audio",
		Tags:        []string{"tts"},
	}, h.handleAudio)

	return h
}

// handleSynthesize handles the synthesize operation.
func (h *TTSHandler) handleSynthesize(ctx context.Context, input *SynthesizeInput) (*SynthesizeOutput, error) {
	autoDetect := input.Body.AutoDetect == nil || *input.Body.AutoDetect

	res, err := h.service.Synthesize(ctx, service.SynthesisRequest{
		Text:       input.Body.Text,
		Voice:      input.Body.Voice,
		Language:   input.Body.Language,
		AutoDetect: autoDetect,
		Parameters: input.Body.Parameters,
	})
	if err != nil {
		return nil, statusError("failed to synthesize", err)
	}

	return &SynthesizeOutput{Body: toSynthesizeDTO(res, "Text converted to speech successfully")}, nil
}

// handleUpload handles the synthesize-upload operation.
func (h *TTSHandler) handleUpload(ctx context.Context, input *UploadInput) (*SynthesizeOutput, error) {
	formData := input.RawBody.Data()
	file := formData.File

	if !file.IsSet || file.Filename == "" {
		return nil, huma.Error400BadRequest("no file selected", nil)
	}

	ext := filepath.Ext(file.Filename)
	if !h.allowed(ext) {
		return nil, statusError("unsupported file type",
			fmt.Errorf("%w: file type %s not supported", document.ErrUnsupportedType, ext))
	}

	text, err := document.Extract(file, file.Size, ext)
	if err != nil {
		return nil, statusError("failed to read document", err)
	}

	autoDetect := true
	if formData.AutoDetect != "" {
		v, err := strconv.ParseBool(formData.AutoDetect)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid auto_detect value", err)
		}
		autoDetect = v
	}

	res, err := h.service.Synthesize(ctx, service.SynthesisRequest{
		Text:       text,
		Voice:      formData.Voice,
		Language:   formData.Language,
		AutoDetect: autoDetect,
	})
	if err != nil {
		return nil, statusError("failed to synthesize", err)
	}

	return &SynthesizeOutput{Body: toSynthesizeDTO(res, "File converted to speech successfully")}, nil
}

// handleAudio handles the get-audio operation.
func (h *TTSHandler) handleAudio(ctx context.Context, input *AudioInput) (*AudioOutput, error) {
	path, err := h.store.Path(input.Filename)
	if err != nil {
		return nil, statusError("audio not available", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, statusError("audio not available", fmt.Errorf("%w: %w", audio.ErrNotFound, err))
	}

	return &AudioOutput{ContentType: "audio/wav", Body: data}, nil
}

func (h *TTSHandler) allowed(ext string) bool {
	if !document.Supported(ext) {
		return false
	}
	if len(h.extensions) == 0 {
		return true
	}

	for _, e := range h.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}

	return false
}

func toSynthesizeDTO(res *service.SynthesisResult, message string) SynthesizeResponseDTO {
	return SynthesizeResponseDTO{
		Success:   true,
		AudioFile: res.Filename,
		AudioURL:  "/api/audio/" + res.Filename,
		Language:  res.Language,
		Voice:     res.Voice,
		Bytes:     res.Bytes,
		Message:   message,
		Metadata:  res.Metadata,
	}
}
