package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// DefaultConfigPath returns the default path for the kasanoma config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "kasanoma", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "kasanoma")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "kasanoma")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "kasanoma")
		}
		return filepath.Join(home, ".config", "kasanoma")
	}
}

// DefaultConfigFile returns the default config file path.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigPath(), "kasanoma.yaml")
}

// DefaultVoicesPath returns the voices directory next to the executable.
func DefaultVoicesPath() string {
	return filepath.Join(executableDir(), "voices")
}

// DefaultOutputPath returns the directory synthesized audio is written to.
func DefaultOutputPath() string {
	return filepath.Join(os.TempDir(), "kasanoma")
}

// DefaultPiperPath locates the piper binary: the bundled build next to the
// executable, then /opt/piper/piper, then piper on PATH. When nothing is found
// the bundled location is returned so the error names a useful path.
func DefaultPiperPath() string {
	bundled := filepath.Join(executableDir(), "piper-linux", "piper")
	if runtime.GOOS == "windows" {
		bundled = filepath.Join(executableDir(), "piper-windows", "piper.exe")
	}

	if fileExists(bundled) {
		return bundled
	}

	if runtime.GOOS != "windows" && fileExists("/opt/piper/piper") {
		return "/opt/piper/piper"
	}

	if found, err := exec.LookPath("piper"); err == nil {
		return found
	}

	return bundled
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}

	return filepath.Dir(exe)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
