package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michsethowusu/kasanoma/internal/envvar"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, "kasanoma.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: "1"
server:
  http_port: 8080
  rate_limit: 5
piper:
  binary: /usr/local/bin/piper
  timeout: 45s
  length_scale: 1.2
voices:
  dir: /srv/voices
  default_language: Twi
output:
  ttl: 10m
`)

	cfg, err := LoadAndValidate(path, "")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5.0, cfg.Server.RateLimit)
	assert.Equal(t, "/usr/local/bin/piper", cfg.Piper.Binary)
	assert.Equal(t, 45*time.Second, cfg.Piper.Timeout)
	assert.Equal(t, 1.2, cfg.Piper.LengthScale)
	assert.Equal(t, "/srv/voices", cfg.Voices.Dir)
	assert.Equal(t, "Twi", cfg.Voices.DefaultLanguage)
	assert.Equal(t, 10*time.Minute, cfg.Output.TTL)

	// Untouched fields keep their defaults.
	def := Default()
	assert.Equal(t, def.Server.GRPCPort, cfg.Server.GRPCPort)
	assert.Equal(t, def.Voices.Extension, cfg.Voices.Extension)
	assert.Equal(t, def.Upload.Extensions, cfg.Upload.Extensions)
}

func TestLoadAndValidate_RejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown field": "voices:\n  folder: /srv\n",
		"bad port":      "server:\n  http_port: 70000\n",
		"bad duration":  "piper:\n  timeout: soon\n",
		"bad extension": "voices:\n  extension: onnx\n",
		"bad yaml":      "server: [",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)

			_, err := LoadAndValidate(path, "")
			assert.Error(t, err)
		})
	}
}

func TestLoadAndValidate_EmptyFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := LoadAndValidate(path, "")
	require.NoError(t, err)
	assert.Equal(t, Default().Server.HTTPPort, cfg.Server.HTTPPort)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.Piper.Timeout)
	assert.Equal(t, ".onnx", cfg.Voices.Extension)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "voices:\n  dir: /from/file\n")

	t.Setenv(envvar.KasanomaVoicesPath, "/from/env")
	t.Setenv(envvar.KasanomaPiperPath, "/env/piper")
	t.Setenv(envvar.KasanomaOutputPath, "/env/out")
	t.Setenv(envvar.KasanomaServerHTTPPort, "9090")
	t.Setenv(envvar.KasanomaServerGRPCPort, "9091")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Voices.Dir)
	assert.Equal(t, "/env/piper", cfg.Piper.Binary)
	assert.Equal(t, "/env/out", cfg.Output.Dir)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 9091, cfg.Server.GRPCPort)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv(envvar.KasanomaServerHTTPPort, "http")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestLoad_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, t.TempDir(), "voices:\n  dir: ~/voices\n")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "voices"), cfg.Voices.Dir)
}

func TestWatcher_Reload(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "voices:\n  default_language: English\n")

	var reloaded atomic.Pointer[Config]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(ctx, path, "", func(cfg *Config, err error) {
		if err == nil {
			reloaded.Store(cfg)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, "English", w.Snapshot().Voices.DefaultLanguage)

	require.NoError(t, os.WriteFile(path, []byte("voices:\n  default_language: Twi\n"), 0o644))

	assert.Eventually(t, func() bool {
		cfg := reloaded.Load()
		return cfg != nil && cfg.Voices.DefaultLanguage == "Twi"
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "Twi", w.Snapshot().Voices.DefaultLanguage)
	assert.GreaterOrEqual(t, w.ReloadCount(), uint32(1))
}
