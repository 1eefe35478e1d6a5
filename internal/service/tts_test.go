package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/michsethowusu/kasanoma/internal/audio"
	"github.com/michsethowusu/kasanoma/internal/audio/audiotest"
	"github.com/michsethowusu/kasanoma/internal/backend"
	"github.com/michsethowusu/kasanoma/internal/voice"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Provider() backend.BackendProvider {
	return backend.BackendProviderPiper
}

func (m *MockBackend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*backend.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) Close() error {
	return nil
}

func touch(t *testing.T, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func wavResponse(t *testing.T) *backend.Response {
	data := audiotest.WAV(t, 2205, 22050)
	return &backend.Response{
		Output:   bytes.NewReader(data),
		Metadata: &backend.ResponseMetadata{Provider: backend.BackendProviderPiper, OutputBytes: int64(len(data))},
	}
}

func newTestService(t *testing.T, b backend.Backend, opts TTSOptions) (*TTS, *voice.Manager) {
	t.Helper()

	root := t.TempDir()
	touch(t, root, "English/amy.onnx", "English/lessac.onnx", "Chinese/huayan.onnx", "Twi/kofi.onnx")

	voices := voice.NewManager(voice.Options{Root: root, DefaultLanguage: "English"})
	require.NoError(t, voices.Rescan())

	backends := backend.NewRegistry()
	if b != nil {
		require.NoError(t, backends.Register(b))
	}

	store, err := audio.NewStore(t.TempDir(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return NewTTS(voices, backends, store, opts), voices
}

func requestText(t *testing.T, req *backend.Request) string {
	t.Helper()

	data, err := io.ReadAll(req.Input)
	require.NoError(t, err)
	return string(data)
}

func TestTTS_Synthesize(t *testing.T) {
	b := new(MockBackend)
	svc, voices := newTestService(t, b, TTSOptions{Parameters: map[string]any{"length_scale": 1.0, "noise_w": 0.8}})

	b.On("Infer", mock.Anything, mock.MatchedBy(func(req *backend.Request) bool {
		return filepath.Base(req.ModelPath) == "kofi.onnx" &&
			req.Parameters["length_scale"] == 1.3 &&
			req.Parameters["noise_w"] == 0.8 &&
			requestText(t, req) == "Akwaaba"
	})).Return(wavResponse(t), nil).Once()

	res, err := svc.Synthesize(context.Background(), SynthesisRequest{
		Text:       "  Akwaaba \n",
		Language:   "Twi",
		Parameters: map[string]any{"length_scale": 1.3},
	})
	require.NoError(t, err)

	assert.Equal(t, "Twi", res.Language)
	assert.Equal(t, "kofi", res.Voice)
	assert.FileExists(t, res.Path)
	assert.True(t, audio.ValidName(res.Filename))
	assert.Equal(t, "Twi", voices.Current().Language, "resolved selection is committed")

	b.AssertExpectations(t)
}

func TestTTS_SynthesizeAutoDetect(t *testing.T) {
	b := new(MockBackend)
	svc, _ := newTestService(t, b, TTSOptions{})

	b.On("Infer", mock.Anything, mock.MatchedBy(func(req *backend.Request) bool {
		return filepath.Base(req.ModelPath) == "huayan.onnx"
	})).Return(wavResponse(t), nil).Once()

	res, err := svc.Synthesize(context.Background(), SynthesisRequest{Text: "你好世界", AutoDetect: true})
	require.NoError(t, err)
	assert.Equal(t, "Chinese", res.Language)
}

func TestTTS_SynthesizeErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		svc, _ := newTestService(t, new(MockBackend), TTSOptions{})
		_, err := svc.Synthesize(context.Background(), SynthesisRequest{Text: " \n "})
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("unknown voice", func(t *testing.T) {
		svc, voices := newTestService(t, new(MockBackend), TTSOptions{})
		before := voices.Current()

		_, err := svc.Synthesize(context.Background(), SynthesisRequest{Text: "hi", Voice: "nobody"})
		assert.ErrorIs(t, err, voice.ErrVoiceNotFound)
		assert.Equal(t, before, voices.Current())
	})

	t.Run("no backend", func(t *testing.T) {
		svc, _ := newTestService(t, nil, TTSOptions{})
		_, err := svc.Synthesize(context.Background(), SynthesisRequest{Text: "hi"})
		assert.ErrorIs(t, err, ErrBackendUnavailable)
	})

	t.Run("backend failure", func(t *testing.T) {
		b := new(MockBackend)
		b.On("Infer", mock.Anything, mock.Anything).Return(nil, backend.ErrTimeout).Once()

		svc, _ := newTestService(t, b, TTSOptions{})
		_, err := svc.Synthesize(context.Background(), SynthesisRequest{Text: "hi"})
		assert.ErrorIs(t, err, backend.ErrTimeout)
	})

	t.Run("empty catalog", func(t *testing.T) {
		voices := voice.NewManager(voice.Options{Root: t.TempDir()})
		require.NoError(t, voices.Rescan())

		svc := NewTTS(voices, backend.NewRegistry(), nil, TTSOptions{})
		_, err := svc.SynthesizeFile(context.Background(), SynthesisRequest{Text: "hi"}, filepath.Join(t.TempDir(), "a.wav"))
		assert.ErrorIs(t, err, voice.ErrEmptyCatalog)

		_, err = svc.Synthesize(context.Background(), SynthesisRequest{Text: "hi"})
		assert.ErrorIs(t, err, ErrNoStore)
	})
}

func TestTTS_SynthesizeFile(t *testing.T) {
	b := new(MockBackend)
	b.On("Infer", mock.Anything, mock.Anything).Return(wavResponse(t), nil).Once()

	svc, _ := newTestService(t, b, TTSOptions{})
	path := filepath.Join(t.TempDir(), "wavs", "audio_0.wav")

	res, err := svc.SynthesizeFile(context.Background(), SynthesisRequest{Text: "Hello"}, path)
	require.NoError(t, err)

	assert.Equal(t, "audio_0.wav", res.Filename)
	assert.Equal(t, "amy", res.Voice)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	info, err := audio.Inspect(f)
	require.NoError(t, err)
	assert.Equal(t, 22050, info.SampleRate)
}

// funcBackend answers every request with a fresh response from infer.
type funcBackend func(ctx context.Context, req *backend.Request) (*backend.Response, error)

func (f funcBackend) Provider() backend.BackendProvider { return backend.BackendProviderPiper }

func (f funcBackend) Infer(ctx context.Context, req *backend.Request) (*backend.Response, error) {
	return f(ctx, req)
}

func (f funcBackend) Close() error { return nil }

func TestTTS_ConcurrencyIsBounded(t *testing.T) {
	var running, peak atomic.Int32

	b := funcBackend(func(context.Context, *backend.Request) (*backend.Response, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)

		return &backend.Response{Output: bytes.NewReader([]byte("RIFF"))}, nil
	})
	svc, _ := newTestService(t, b, TTSOptions{MaxConcurrent: 2})

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Synthesize(context.Background(), SynthesisRequest{Text: "hi"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, int32(0), running.Load())
}

func TestTTS_CancelledWhileWaiting(t *testing.T) {
	b := new(MockBackend)
	svc, _ := newTestService(t, b, TTSOptions{MaxConcurrent: 1})

	require.NoError(t, svc.sem.Acquire(context.Background(), 1))
	defer svc.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Synthesize(ctx, SynthesisRequest{Text: "hi"})
	assert.True(t, errors.Is(err, context.Canceled))
	b.AssertNotCalled(t, "Infer", mock.Anything, mock.Anything)
}

func TestTTS_Status(t *testing.T) {
	svc, _ := newTestService(t, new(MockBackend), TTSOptions{PiperPath: "/opt/piper/piper"})

	st := svc.Status()
	assert.True(t, st.PiperExists)
	assert.Equal(t, []string{"piper"}, st.Backends)
	assert.Equal(t, 3, st.LanguageCount)
	assert.Equal(t, 4, st.VoiceCount)
	assert.Equal(t, "English", st.CurrentLanguage)
	assert.Equal(t, "amy", st.CurrentVoice)

	svc, _ = newTestService(t, nil, TTSOptions{PiperPath: "/definitely/missing/piper"})
	st = svc.Status()
	assert.False(t, st.PiperExists)
	assert.Equal(t, "/definitely/missing/piper", st.PiperPath)
}
