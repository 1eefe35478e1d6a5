// Package batch synthesizes every row of a CSV file and writes a metadata
// CSV pairing each WAV file with its text.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/michsethowusu/kasanoma/internal/service"
	"github.com/michsethowusu/kasanoma/internal/xfs"
)

// DefaultColumn is the CSV column holding the text to speak.
const DefaultColumn = "sentence"

// ErrMissingColumn is returned when the input CSV lacks the text column.
var ErrMissingColumn = errors.New("batch: text column not found")

// Synthesizer writes speech for a request into a WAV file.
type Synthesizer interface {
	SynthesizeFile(ctx context.Context, req service.SynthesisRequest, path string) (*service.SynthesisResult, error)
}

// Options configures Run.
type Options struct {
	OutputDir    string
	MetadataPath string
	Column       string
	Voice        string
	Language     string
	AutoDetect   bool
}

// Row is one synthesized line.
type Row struct {
	WAVFilename string
	Text        string
}

// Run reads CSV rows from r and synthesizes them as audio_<n>.wav, where n is
// the data row position starting at 1. Blank rows are skipped and leave a gap
// in the numbering. The metadata file is only written
// when at least one row was synthesized. The first synthesis error stops the
// run.
func Run(ctx context.Context, synth Synthesizer, r io.Reader, opts Options) ([]Row, error) {
	if opts.Column == "" {
		opts.Column = DefaultColumn
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("batch: failed to read header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) == opts.Column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.Column)
	}

	if err := xfs.EnsureDir(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("batch: failed to create %s: %w", opts.OutputDir, err)
	}

	var rows []Row
	for i := 1; ; i++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("batch: failed to read row %d: %w", i, err)
		}

		if col >= len(record) || strings.TrimSpace(record[col]) == "" {
			slog.Warn("Skipping blank row", "row", i)
			continue
		}
		text := record[col]

		out := filepath.Join(opts.OutputDir, fmt.Sprintf("audio_%d.wav", i))
		slog.Info("Synthesizing row", "row", i, "text", preview(text), "output", out)

		if _, err := synth.SynthesizeFile(ctx, service.SynthesisRequest{
			Text:       text,
			Voice:      opts.Voice,
			Language:   opts.Language,
			AutoDetect: opts.AutoDetect,
		}, out); err != nil {
			return rows, fmt.Errorf("batch: row %d: %w", i, err)
		}

		rows = append(rows, Row{WAVFilename: out, Text: text})
	}

	if len(rows) == 0 || opts.MetadataPath == "" {
		return rows, nil
	}

	if err := writeMetadata(opts.MetadataPath, rows); err != nil {
		return rows, err
	}
	slog.Info("Metadata written", "path", opts.MetadataPath, "rows", len(rows))

	return rows, nil
}

func writeMetadata(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: failed to create metadata: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"wav_filename", "text"}); err != nil {
		return fmt.Errorf("batch: failed to write metadata: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.WAVFilename, row.Text}); err != nil {
			return fmt.Errorf("batch: failed to write metadata: %w", err)
		}
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("batch: failed to write metadata: %w", err)
	}

	return f.Close()
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= 40 {
		return text
	}

	return string(r[:40]) + "..."
}
