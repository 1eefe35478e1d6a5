package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/michsethowusu/kasanoma/internal/envvar"
	"github.com/michsethowusu/kasanoma/internal/xfs"
)

//go:embed schema.json
var schemaJSON string

// Load reads the config at path, falling back to Default when the file does
// not exist, then applies environment overrides. An empty schemaPath uses the
// embedded schema.
func Load(path, schemaPath string) (*Config, error) {
	cfg, err := LoadAndValidate(path, schemaPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.expandPaths()

	return cfg, nil
}

// LoadAndValidate loads and validates the configuration. Fields the file
// leaves out keep their Default values.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides config values from KASANOMA_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(envvar.KasanomaVoicesPath); v != "" {
		cfg.Voices.Dir = v
	}
	if v := os.Getenv(envvar.KasanomaPiperPath); v != "" {
		cfg.Piper.Binary = v
	}
	if v := os.Getenv(envvar.KasanomaOutputPath); v != "" {
		cfg.Output.Dir = v
	}

	ports := []struct {
		name string
		dst  *int
	}{
		{envvar.KasanomaServerHTTPPort, &cfg.Server.HTTPPort},
		{envvar.KasanomaServerGRPCPort, &cfg.Server.GRPCPort},
	}
	for _, p := range ports {
		v := strings.TrimSpace(os.Getenv(p.name))
		if v == "" {
			continue
		}

		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("config: invalid %s %q", p.name, v)
		}
		*p.dst = port
	}

	return nil
}

func (c *Config) expandPaths() {
	c.Voices.Dir = xfs.ExpandTilde(c.Voices.Dir)
	c.Piper.Binary = xfs.ExpandTilde(c.Piper.Binary)
	c.Output.Dir = xfs.ExpandTilde(c.Output.Dir)
	c.Logging.File = xfs.ExpandTilde(c.Logging.File)
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schemaPath != "" {
		return jsonschema.Compile(schemaPath)
	}

	return jsonschema.CompileString("schema.json", schemaJSON)
}
