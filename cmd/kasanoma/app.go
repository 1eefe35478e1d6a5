package main

import (
	"log/slog"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/backend"
	"github.com/michsethowusu/kasanoma/internal/backend/piper"
	"github.com/michsethowusu/kasanoma/internal/config"
	"github.com/michsethowusu/kasanoma/internal/service"
	"github.com/michsethowusu/kasanoma/internal/voice"
)

// app holds the components shared by the serve and batch commands.
type app struct {
	voices   *voice.Manager
	backends *backend.Registry
	tts      *service.TTS
}

func voiceOptions(cfg *config.Config) voice.Options {
	return voice.Options{
		Root:            cfg.Voices.Dir,
		Extension:       cfg.Voices.Extension,
		DefaultLanguage: cfg.Voices.DefaultLanguage,
	}
}

func piperParameters(cfg *config.Config) map[string]any {
	params := map[string]any{}
	if cfg.Piper.LengthScale > 0 {
		params[piper.ParamLengthScale] = cfg.Piper.LengthScale
	}
	if cfg.Piper.NoiseScale > 0 {
		params[piper.ParamNoiseScale] = cfg.Piper.NoiseScale
	}
	if cfg.Piper.NoiseW > 0 {
		params[piper.ParamNoiseW] = cfg.Piper.NoiseW
	}
	if cfg.Piper.SentenceSilence > 0 {
		params[piper.ParamSentenceSilence] = cfg.Piper.SentenceSilence
	}

	return params
}

// newApp scans the voices and registers piper. A missing piper binary is
// logged; synthesis then fails until it is installed.
func newApp(cfg *config.Config, store *audio.Store) (*app, error) {
	voices := voice.NewManager(voiceOptions(cfg))
	if err := voices.Rescan(); err != nil {
		return nil, err
	}

	backends := backend.NewRegistry()
	if pb, err := piper.NewBackend(cfg.Piper.Binary, cfg.Piper.Timeout); err != nil {
		slog.Warn("Piper executable not found", "path", cfg.Piper.Binary, "error", err)
	} else if err := backends.Register(pb); err != nil {
		return nil, err
	}

	tts := service.NewTTS(voices, backends, store, service.TTSOptions{
		MaxConcurrent: int64(cfg.Piper.MaxConcurrent),
		PiperPath:     cfg.Piper.Binary,
		Parameters:    piperParameters(cfg),
	})

	return &app{voices: voices, backends: backends, tts: tts}, nil
}

func (a *app) Close() error {
	return a.backends.Close()
}
