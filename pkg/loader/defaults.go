package loader

import (
	_ "embed"

	"github.com/sonemaro/lintconf/pkg/config"
)

//go:embed default-config.yml
var defaultConfig []byte

// DefaultConfigName is the source name reported for the embedded defaults.
const DefaultConfigName = "default-config.yml"

// Default parses the embedded default configuration. The result is both the
// lowest precedence source of every run and the validation baseline.
func Default() (config.Tree, error) {
	return Parse(FormatYAML, defaultConfig, DefaultConfigName)
}

// DefaultBytes returns a copy of the embedded default configuration.
func DefaultBytes() []byte {
	return append([]byte(nil), defaultConfig...)
}
