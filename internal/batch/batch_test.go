package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/michsethowusu/kasanoma/internal/service"
)

type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) SynthesizeFile(ctx context.Context, req service.SynthesisRequest, path string) (*service.SynthesisResult, error) {
	args := m.Called(ctx, req, path)
	if res, ok := args.Get(0).(*service.SynthesisResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "wavs")
	meta := filepath.Join(dir, "metadata.csv")

	synth := new(MockSynthesizer)
	synth.On("SynthesizeFile", mock.Anything, service.SynthesisRequest{Text: "Akwaaba", Voice: "kofi"}, filepath.Join(out, "audio_1.wav")).
		Return(&service.SynthesisResult{}, nil).Once()
	synth.On("SynthesizeFile", mock.Anything, service.SynthesisRequest{Text: "Me da wo ase, \"nua\"", Voice: "kofi"}, filepath.Join(out, "audio_3.wav")).
		Return(&service.SynthesisResult{}, nil).Once()

	input := "id,sentence\n1,Akwaaba\n2,\n3,\"Me da wo ase, \"\"nua\"\"\"\n"

	rows, err := Run(context.Background(), synth, strings.NewReader(input), Options{
		OutputDir:    out,
		MetadataPath: meta,
		Voice:        "kofi",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	data, err := os.ReadFile(meta)
	require.NoError(t, err)
	assert.Equal(t,
		"wav_filename,text\n"+
			filepath.Join(out, "audio_1.wav")+",Akwaaba\n"+
			filepath.Join(out, "audio_3.wav")+",\"Me da wo ase, \"\"nua\"\"\"\n",
		string(data))

	synth.AssertExpectations(t)
}

func TestRun_MissingColumn(t *testing.T) {
	_, err := Run(context.Background(), new(MockSynthesizer), strings.NewReader("id,text\n1,hi\n"), Options{OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestRun_CustomColumn(t *testing.T) {
	synth := new(MockSynthesizer)
	synth.On("SynthesizeFile", mock.Anything, mock.MatchedBy(func(req service.SynthesisRequest) bool {
		return req.Text == "hi" && req.AutoDetect
	}), mock.Anything).Return(&service.SynthesisResult{}, nil).Once()

	rows, err := Run(context.Background(), synth, strings.NewReader("text\nhi\n"), Options{
		OutputDir:  t.TempDir(),
		Column:     "text",
		AutoDetect: true,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRun_StopsOnError(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "metadata.csv")

	synth := new(MockSynthesizer)
	synth.On("SynthesizeFile", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("piper failed")).Once()

	rows, err := Run(context.Background(), synth, strings.NewReader("sentence\none\ntwo\n"), Options{
		OutputDir:    filepath.Join(dir, "wavs"),
		MetadataPath: meta,
	})
	assert.ErrorContains(t, err, "row 1")
	assert.Empty(t, rows)
	assert.NoFileExists(t, meta)

	synth.AssertExpectations(t)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	assert.Equal(t, strings.Repeat("a", 40)+"...", preview(strings.Repeat("a", 50)))
}
