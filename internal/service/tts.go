package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/backend"
	"github.com/michsethowusu/kasanoma/internal/voice"
	"github.com/michsethowusu/kasanoma/internal/xfs"
)

// TTSOptions configures the TTS service.
type TTSOptions struct {
	// MaxConcurrent bounds simultaneous backend runs. Values below 1 mean 1.
	MaxConcurrent int64

	// PiperPath is reported by Status.
	PiperPath string

	// Parameters are default backend parameters; request parameters win.
	Parameters map[string]any
}

// SynthesisRequest is a single text-to-speech request.
type SynthesisRequest struct {
	Text       string
	Voice      string
	Language   string
	AutoDetect bool
	Parameters map[string]any
}

// SynthesisResult describes synthesized audio.
type SynthesisResult struct {
	Filename string                    `json:"audio_file"`
	Path     string                    `json:"-"`
	Language string                    `json:"language"`
	Voice    string                    `json:"voice"`
	Bytes    int64                     `json:"bytes"`
	Metadata *backend.ResponseMetadata `json:"metadata,omitempty"`
}

// Status is a snapshot of the service state.
type Status struct {
	System          string   `json:"system"`
	PiperPath       string   `json:"piper_path"`
	PiperExists     bool     `json:"piper_exists"`
	Backends        []string `json:"backends"`
	LanguageCount   int      `json:"language_count"`
	VoiceCount      int      `json:"voice_count"`
	CurrentLanguage string   `json:"current_language"`
	CurrentVoice    string   `json:"current_voice"`
	VoicesPath      string   `json:"voices_path"`
}

// TTS is a service abstraction for text-to-speech.
type TTS struct {
	voices   *voice.Manager
	backends *backend.Registry
	store    *audio.Store
	sem      *semaphore.Weighted
	opts     TTSOptions
}

// NewTTS creates a new TTS service. store may be nil when only SynthesizeFile
// is used.
func NewTTS(voices *voice.Manager, backends *backend.Registry, store *audio.Store, opts TTSOptions) *TTS {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}

	return &TTS{
		voices:   voices,
		backends: backends,
		store:    store,
		sem:      semaphore.NewWeighted(opts.MaxConcurrent),
		opts:     opts,
	}
}

// Voices returns the voice manager the service resolves selections with.
func (s *TTS) Voices() *voice.Manager {
	return s.voices
}

// Synthesize speaks req.Text with the resolved voice and keeps the audio in
// the store.
func (s *TTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	sel, resp, err := s.infer(ctx, req)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.Save(resp.Output, sel.VoiceName())
	if err != nil {
		return nil, fmt.Errorf("service: failed to store audio: %w", err)
	}

	slog.Info("Speech synthesized",
		"language", sel.Language,
		"voice", sel.VoiceName(),
		"filename", entry.Name,
		"bytes", entry.Size,
	)

	return &SynthesisResult{
		Filename: entry.Name,
		Path:     entry.Path,
		Language: sel.Language,
		Voice:    sel.VoiceName(),
		Bytes:    entry.Size,
		Metadata: resp.Metadata,
	}, nil
}

// SynthesizeFile speaks req.Text into the WAV file at path.
func (s *TTS) SynthesizeFile(ctx context.Context, req SynthesisRequest, path string) (*SynthesisResult, error) {
	sel, resp, err := s.infer(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := xfs.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("service: failed to create %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create %s: %w", path, err)
	}

	n, err := io.Copy(f, resp.Output)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to write %s: %w", path, err)
	}

	return &SynthesisResult{
		Filename: filepath.Base(path),
		Path:     path,
		Language: sel.Language,
		Voice:    sel.VoiceName(),
		Bytes:    n,
		Metadata: resp.Metadata,
	}, nil
}

// infer resolves the voice for req, commits it as the current selection and
// runs the backend.
func (s *TTS) infer(ctx context.Context, req SynthesisRequest) (voice.Selection, *backend.Response, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return voice.Selection{}, nil, ErrEmptyText
	}

	sel, err := s.voices.Resolve(voice.ResolveRequest{
		Text:       text,
		Language:   req.Language,
		Voice:      req.Voice,
		AutoDetect: req.AutoDetect,
	})
	if err != nil {
		return voice.Selection{}, nil, err
	}
	s.voices.Commit(sel)

	b, ok := s.backends.Get(backend.BackendProviderPiper)
	if !ok {
		return sel, nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, backend.ErrNotFound)
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return sel, nil, err
	}
	defer s.sem.Release(1)

	params := maps.Clone(s.opts.Parameters)
	if params == nil {
		params = make(map[string]any, len(req.Parameters))
	}
	maps.Copy(params, req.Parameters)

	resp, err := b.Infer(ctx, &backend.Request{
		ModelPath:  sel.VoicePath(),
		Input:      strings.NewReader(text),
		Parameters: params,
	})
	if err != nil {
		slog.Error("Speech synthesis failed", "voice", sel.VoiceName(), "error", err)
		return sel, nil, err
	}

	return sel, resp, nil
}

// Status reports the backend, catalog and selection state.
func (s *TTS) Status() Status {
	catalog, current := s.voices.Snapshot()

	st := Status{
		System:          runtime.GOOS,
		PiperPath:       s.opts.PiperPath,
		LanguageCount:   catalog.Len(),
		VoiceCount:      catalog.VoiceCount(),
		CurrentLanguage: current.Language,
		CurrentVoice:    current.VoiceName(),
		VoicesPath:      catalog.Root(),
	}

	for _, p := range s.backends.Providers() {
		st.Backends = append(st.Backends, string(p))
	}

	if b, ok := s.backends.Get(backend.BackendProviderPiper); ok {
		st.PiperExists = true
		if pb, ok := b.(interface{ BinaryPath() string }); ok {
			st.PiperPath = pb.BinaryPath()
		}
	} else {
		st.PiperExists = xfs.IsFile(s.opts.PiperPath)
	}

	return st
}
