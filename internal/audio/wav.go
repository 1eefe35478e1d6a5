package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/go-audio/wav"
)

// Info describes a decoded WAV header.
type Info struct {
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
}

// Inspect reads the WAV header of r. The duration is derived from the size
// of the PCM data chunk.
func Inspect(r io.ReadSeeker) (Info, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Info{}, ErrInvalidWAV
	}

	if err := d.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	bytesPerSecond := int64(d.SampleRate) * int64(d.NumChans) * int64(d.BitDepth) / 8
	if bytesPerSecond <= 0 {
		return Info{}, fmt.Errorf("%w: missing format chunk", ErrInvalidWAV)
	}
	duration := time.Duration(int64(d.PCMSize) * int64(time.Second) / bytesPerSecond)

	return Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Duration:   duration,
	}, nil
}
