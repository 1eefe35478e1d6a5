package piper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/backend"
	"github.com/michsethowusu/kasanoma/internal/mapsafe"
)

// Parameter keys understood by the piper backend.
const (
	ParamSpeakerID       = "speaker_id"
	ParamLengthScale     = "length_scale"
	ParamNoiseScale      = "noise_scale"
	ParamNoiseW          = "noise_w"
	ParamSentenceSilence = "sentence_silence"
)

// Backend implements backend.Backend for Piper TTS.
type Backend struct {
	executor *backend.Executor
	tempDir  string
}

// NewBackend creates a new Piper backend for the binary at binPath.
func NewBackend(binPath string, timeout time.Duration) (*Backend, error) {
	executor, err := backend.NewExecutor(binPath, timeout)
	if err != nil {
		return nil, err
	}

	return NewBackendWithExecutor(executor, os.TempDir()), nil
}

// NewBackendWithExecutor creates a Piper backend that writes its scratch
// files to tempDir.
func NewBackendWithExecutor(executor *backend.Executor, tempDir string) *Backend {
	return &Backend{
		executor: executor,
		tempDir:  tempDir,
	}
}

// Provider returns the backend identifier.
func (b *Backend) Provider() backend.BackendProvider {
	return backend.BackendProviderPiper
}

// BinaryPath returns the resolved piper binary.
func (b *Backend) BinaryPath() string {
	return b.executor.BinaryPath()
}

// Infer synthesizes speech from text.
// Input: text bytes.
// Output: WAV audio bytes.
func (b *Backend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	// Piper only writes audio to a file, so it is read back afterwards.
	outputFile := filepath.Join(b.tempDir, "piper_"+uuid.NewString()+audio.Extension)
	defer os.Remove(outputFile)

	args := b.buildArgs(req, outputFile)

	start := time.Now()
	stdout, stderr, err := b.executor.Execute(ctx, args, req.Input)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, backend.ErrTimeout) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w: %s", backend.ErrExecutionFailed, err, strings.TrimSpace(string(stderr)))
	}

	audioData, err := os.ReadFile(outputFile)
	if err != nil || len(audioData) == 0 {
		return nil, fmt.Errorf("%w: %s", backend.ErrNoOutput, strings.TrimSpace(string(stderr)))
	}

	metadata := &backend.ResponseMetadata{
		Provider:    b.Provider(),
		Model:       req.ModelPath,
		Timestamp:   start,
		Elapsed:     elapsed.Seconds(),
		OutputBytes: int64(len(audioData)),
		BackendSpecific: map[string]any{
			"stdout": string(stdout),
			"stderr": string(stderr),
			"args":   args,
		},
	}

	if info, err := audio.Inspect(bytes.NewReader(audioData)); err == nil {
		metadata.SampleRate = info.SampleRate
		metadata.Channels = info.Channels
		metadata.AudioDuration = info.Duration.Seconds()
	} else {
		slog.Warn("Piper output is not a readable WAV", "model", req.ModelPath, "error", err)
	}

	return &backend.Response{
		Output:   bytes.NewReader(audioData),
		Metadata: metadata,
	}, nil
}

// buildArgs builds Piper command-line arguments.
func (b *Backend) buildArgs(req *backend.Request, outputFile string) []string {
	args := []string{
		"--model", req.ModelPath,
		"--output_file", outputFile,
	}

	// Voices ship their phoneme config as <model>.json next to the model.
	if cfg := req.ModelPath + ".json"; fileExists(cfg) {
		args = append(args, "--config", cfg)
	}

	p := req.Parameters
	if p == nil {
		return args
	}

	if v, ok := mapsafe.Lookup(p, ParamSpeakerID, 0); ok && v >= 0 {
		args = append(args, "--speaker", strconv.Itoa(v))
	}

	floats := []struct{ key, flag string }{
		{ParamLengthScale, "--length_scale"},
		{ParamNoiseScale, "--noise_scale"},
		{ParamNoiseW, "--noise_w"},
		{ParamSentenceSilence, "--sentence_silence"},
	}
	for _, f := range floats {
		if v, ok := mapsafe.Lookup(p, f.key, 0.0); ok && v > 0 {
			args = append(args, f.flag, strconv.FormatFloat(v, 'f', 2, 64))
		}
	}

	return args
}

// Close cleans up resources. Piper does not have any resources to clean up.
func (b *Backend) Close() error {
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
