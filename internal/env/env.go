// Package env resolves the runtime environment the process is running in.
package env

import (
	"os"
	"strings"

	"github.com/michsethowusu/kasanoma/internal/envvar"
)

// Environment is the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Test        Environment = "test"
)

// FromEnv reads the environment from KASANOMA_ENV, defaulting to Development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.KasanomaEnv))
}

// Parse maps a raw value to an Environment. Unknown values are Development.
func Parse(raw string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(raw))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) String() string {
	return string(e)
}
