package config

import "time"

// Config holds the main configuration for the application.
type Config struct {
	Version string        `json:"version"           yaml:"version"`
	Server  ServerConfig  `json:"server"            yaml:"server"`
	Piper   PiperConfig   `json:"piper"             yaml:"piper"`
	Voices  VoicesConfig  `json:"voices"            yaml:"voices"`
	Output  OutputConfig  `json:"output"            yaml:"output"`
	Upload  UploadConfig  `json:"upload"            yaml:"upload"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServerConfig holds the HTTP and gRPC listener settings.
type ServerConfig struct {
	Host        string   `json:"host"                   yaml:"host"`
	HTTPPort    int      `json:"http_port"              yaml:"http_port"`
	GRPCPort    int      `json:"grpc_port"              yaml:"grpc_port"`
	CORSOrigins []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
	RateLimit   float64  `json:"rate_limit,omitempty"   yaml:"rate_limit,omitempty"` // requests per second, 0 disables
}

// PiperConfig holds the piper binary and its synthesis parameters.
type PiperConfig struct {
	Binary          string        `json:"binary"                     yaml:"binary"`
	Timeout         time.Duration `json:"timeout"                    yaml:"timeout"`
	MaxConcurrent   int           `json:"max_concurrent"             yaml:"max_concurrent"`
	LengthScale     float64       `json:"length_scale,omitempty"     yaml:"length_scale,omitempty"`
	NoiseScale      float64       `json:"noise_scale,omitempty"      yaml:"noise_scale,omitempty"`
	NoiseW          float64       `json:"noise_w,omitempty"          yaml:"noise_w,omitempty"`
	SentenceSilence float64       `json:"sentence_silence,omitempty" yaml:"sentence_silence,omitempty"`
}

// VoicesConfig holds where voice models are catalogued from.
type VoicesConfig struct {
	Dir             string `json:"dir"              yaml:"dir"`
	Extension       string `json:"extension"        yaml:"extension"`
	DefaultLanguage string `json:"default_language" yaml:"default_language"`
	Watch           bool   `json:"watch"            yaml:"watch"`
}

// OutputConfig holds where synthesized audio is written and for how long it is kept.
type OutputConfig struct {
	Dir string        `json:"dir" yaml:"dir"`
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// UploadConfig limits document uploads.
type UploadConfig struct {
	MaxBytes   int64    `json:"max_bytes"  yaml:"max_bytes"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `json:"level,omitempty"   yaml:"level,omitempty"`
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version: "1",
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 5000,
			GRPCPort: 5001,
		},
		Piper: PiperConfig{
			Binary:        DefaultPiperPath(),
			Timeout:       30 * time.Second,
			MaxConcurrent: 2,
		},
		Voices: VoicesConfig{
			Dir:             DefaultVoicesPath(),
			Extension:       ".onnx",
			DefaultLanguage: "English",
			Watch:           true,
		},
		Output: OutputConfig{
			Dir: DefaultOutputPath(),
			TTL: time.Hour,
		},
		Upload: UploadConfig{
			MaxBytes:   16 << 20,
			Extensions: []string{".txt", ".md", ".doc", ".docx", ".pdf"},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "kasanoma.log",
		},
	}
}
