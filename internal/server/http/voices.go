package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/michsethowusu/kasanoma/internal/voice"
)

type (
	LanguageDTO struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		VoiceCount  int    `json:"voice_count"`
	}

	VoiceDTO struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Language    string `json:"language"`
	}

	SelectionDTO struct {
		Language            string `json:"language"`
		LanguageDisplayName string `json:"language_display_name,omitempty"`
		Voice               string `json:"voice"`
		VoiceDisplayName    string `json:"voice_display_name,omitempty"`
	}

	DetectionDTO struct {
		Language string            `json:"language"`
		Detected bool              `json:"detected"`
		Script   string            `json:"script,omitempty"`
		Stats    voice.ScriptStats `json:"stats"`
	}
)

type (
	ListLanguagesOutput struct {
		Body struct {
			Languages []LanguageDTO `json:"languages"`
			Current   string        `json:"current"`
		}
	}

	ListVoicesInput struct {
		Language string `query:"language" doc:"Only list voices of this language folder"`
	}

	ListVoicesOutput struct {
		Body struct {
			Voices  []VoiceDTO `json:"voices"`
			Current string     `json:"current"`
		}
	}

	RescanOutput struct {
		Body struct {
			Languages int          `json:"languages"`
			Voices    int          `json:"voices"`
			Selection SelectionDTO `json:"selection"`
		}
	}

	SelectionOutput struct {
		Body SelectionDTO
	}

	SetLanguageInput struct {
		Body struct {
			Language string `json:"language" minLength:"1"`
		}
	}

	SetVoiceInput struct {
		Body struct {
			Voice    string `json:"voice" minLength:"1"`
			Language string `json:"language,omitempty" doc:"Only search this language folder"`
		}
	}

	DetectInput struct {
		Body struct {
			Text     string `json:"text"`
			Fallback string `json:"fallback,omitempty" doc:"Language returned when detection fails; defaults to the current language"`
		}
	}

	DetectOutput struct {
		Body DetectionDTO
	}

	DisplayNameInput struct {
		Code string `path:"code"`
	}

	DisplayNameOutput struct {
		Body struct {
			Code        string `json:"code"`
			DisplayName string `json:"display_name"`
		}
	}
)

// VoiceHandler handles HTTP requests for the voice catalog and selection.
type VoiceHandler struct {
	voices *voice.Manager
}

// NewVoiceHandler creates a new VoiceHandler instance.
func NewVoiceHandler(api huma.API, voices *voice.Manager) *VoiceHandler {
	h := &VoiceHandler{voices: voices}

	huma.Register(api, huma.Operation{
		OperationID: "list-languages",
		Method:      http.MethodGet,
		Path:        "/api/languages",
		Summary:     "List catalogued languages",
		Tags:        []string{"voices"},
	}, h.handleListLanguages)

	huma.Register(api, huma.Operation{
		OperationID: "list-voices",
		Method:      http.MethodGet,
		Path:        "/api/voices",
		Summary:     "List voices",
		Tags:        []string{"voices"},
	}, h.handleListVoices)

	huma.Register(api, huma.Operation{
		OperationID: "rescan-voices",
		Method:      http.MethodPost,
		Path:        "/api/voices/rescan",
		Summary:     "Rebuild the voice catalog from disk",
		Tags:        []string{"voices"},
	}, h.handleRescan)

	huma.Register(api, huma.Operation{
		OperationID: "get-selection",
		Method:      http.MethodGet,
		Path:        "/api/selection",
		Summary:     "Get the current language and voice",
		Tags:        []string{"selection"},
	}, h.handleGetSelection)

	huma.Register(api, huma.Operation{
		OperationID: "set-language",
		Method:      http.MethodPut,
		Path:        "/api/selection/language",
		Summary:     "Select a language and its first voice",
		Tags:        []string{"selection"},
	}, h.handleSetLanguage)

	huma.Register(api, huma.Operation{
		OperationID: "set-voice",
		Method:      http.MethodPut,
		Path:        "/api/selection/voice",
		Summary:     "Select a voice by name",
		Tags:        []string{"selection"},
	}, h.handleSetVoice)

	huma.Register(api, huma.Operation{
		OperationID: "detect-language",
		Method:      http.MethodPost,
		Path:        "/api/detect",
		Summary:     "Detect the language of a text from its script",
		Tags:        []string{"voices"},
	}, h.handleDetect)

	huma.Register(api, huma.Operation{
		OperationID: "display-name",
		Method:      http.MethodGet,
		Path:        "/api/display-name/{code}",
		Summary:     "Get the display name of a language code or model name",
		Tags:        []string{"voices"},
	}, h.handleDisplayName)

	return h
}

func (h *VoiceHandler) handleListLanguages(ctx context.Context, _ *struct{}) (*ListLanguagesOutput, error) {
	catalog, current := h.voices.Snapshot()

	out := &ListLanguagesOutput{}
	out.Body.Languages = make([]LanguageDTO, 0, catalog.Len())
	for _, lang := range catalog.Languages() {
		out.Body.Languages = append(out.Body.Languages, LanguageDTO{
			Name:        lang.FolderName,
			DisplayName: lang.DisplayName,
			VoiceCount:  lang.VoiceCount,
		})
	}
	out.Body.Current = current.Language

	return out, nil
}

func (h *VoiceHandler) handleListVoices(ctx context.Context, input *ListVoicesInput) (*ListVoicesOutput, error) {
	catalog, current := h.voices.Snapshot()

	voices := catalog.AllVoices()
	if input.Language != "" {
		if !catalog.Has(input.Language) {
			return nil, statusError("language not found", voice.ErrLanguageNotFound)
		}
		voices = catalog.Voices(input.Language)
	}

	out := &ListVoicesOutput{}
	out.Body.Voices = make([]VoiceDTO, 0, len(voices))
	for _, v := range voices {
		out.Body.Voices = append(out.Body.Voices, toVoiceDTO(v))
	}
	out.Body.Current = current.VoiceName()

	return out, nil
}

func (h *VoiceHandler) handleRescan(ctx context.Context, _ *struct{}) (*RescanOutput, error) {
	if err := h.voices.Rescan(); err != nil {
		return nil, statusError("failed to rescan voices", err)
	}

	catalog, current := h.voices.Snapshot()

	out := &RescanOutput{}
	out.Body.Languages = catalog.Len()
	out.Body.Voices = catalog.VoiceCount()
	out.Body.Selection = toSelectionDTO(catalog, current)

	return out, nil
}

func (h *VoiceHandler) handleGetSelection(ctx context.Context, _ *struct{}) (*SelectionOutput, error) {
	catalog, current := h.voices.Snapshot()
	return &SelectionOutput{Body: toSelectionDTO(catalog, current)}, nil
}

func (h *VoiceHandler) handleSetLanguage(ctx context.Context, input *SetLanguageInput) (*SelectionOutput, error) {
	sel, err := h.voices.SetLanguage(input.Body.Language)
	if err != nil {
		return nil, statusError("invalid language", err)
	}

	return &SelectionOutput{Body: toSelectionDTO(h.voices.Catalog(), sel)}, nil
}

func (h *VoiceHandler) handleSetVoice(ctx context.Context, input *SetVoiceInput) (*SelectionOutput, error) {
	sel, err := h.voices.SetVoice(input.Body.Voice, input.Body.Language)
	if err != nil {
		return nil, statusError("invalid voice", err)
	}

	return &SelectionOutput{Body: toSelectionDTO(h.voices.Catalog(), sel)}, nil
}

func (h *VoiceHandler) handleDetect(ctx context.Context, input *DetectInput) (*DetectOutput, error) {
	catalog, current := h.voices.Snapshot()

	fallback := input.Body.Fallback
	if fallback == "" {
		fallback = current.Language
	}

	stats := voice.Analyze(input.Body.Text)
	language := voice.Detect(input.Body.Text, catalog, fallback)

	return &DetectOutput{Body: DetectionDTO{
		Language: language,
		Detected: stats.Script() != "" && language == stats.Script(),
		Script:   stats.Script(),
		Stats:    stats,
	}}, nil
}

func (h *VoiceHandler) handleDisplayName(ctx context.Context, input *DisplayNameInput) (*DisplayNameOutput, error) {
	out := &DisplayNameOutput{}
	out.Body.Code = input.Code
	out.Body.DisplayName = voice.DisplayName(input.Code)

	return out, nil
}

func toVoiceDTO(v voice.Voice) VoiceDTO {
	return VoiceDTO{Name: v.Name, DisplayName: v.DisplayName, Language: v.Language}
}

func toSelectionDTO(catalog *voice.Catalog, sel voice.Selection) SelectionDTO {
	dto := SelectionDTO{Language: sel.Language, Voice: sel.VoiceName()}
	if lang, ok := catalog.Language(sel.Language); ok {
		dto.LanguageDisplayName = lang.DisplayName
	}
	if sel.Voice != nil {
		dto.VoiceDisplayName = sel.Voice.DisplayName
	}

	return dto
}
