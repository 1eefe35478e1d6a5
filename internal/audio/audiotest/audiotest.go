// Package audiotest builds WAV fixtures for tests.
package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV returns a mono 16-bit WAV file of silence with the given number of
// samples at sampleRate.
func WAV(tb testing.TB, samples, sampleRate int) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.wav")
	if err := WriteFile(path, samples, sampleRate); err != nil {
		tb.Fatalf("audiotest: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("audiotest: %v", err)
	}

	return data
}

// WriteFile writes a mono 16-bit WAV file of silence to path.
func WriteFile(path string, samples, sampleRate int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	format := &audio.Format{SampleRate: sampleRate, NumChannels: 1}
	e := wav.NewEncoder(out, format.SampleRate, 16, format.NumChannels, 1)

	buf := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, samples),
		SourceBitDepth: 16,
	}
	if err := e.Write(buf); err != nil {
		return err
	}

	return e.Close()
}
