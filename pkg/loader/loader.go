/*
Package loader reads configuration documents from disk and turns them into
config trees.

YAML (.yml, .yaml), JSON (.json) and TOML (.toml) documents are supported.
Decoded documents are normalized so every nested section is a
map[string]any, lists are []any, integers are int and floating point numbers
are float64, whatever the source format.

	l := loader.New(afero.NewOsFs(), log)
	user, err := l.LoadAll([]string{"lintconf.yml", "team.toml"})
	defaults, err := loader.Default()
*/
package loader

import (
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/afero"

	"github.com/sonemaro/lintconf/pkg/config"
	"github.com/sonemaro/lintconf/pkg/logger"
)

// Format is a supported document format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf derives the document format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", oops.
			In("loader").
			With("path", path).
			Errorf("unsupported configuration file extension %q", filepath.Ext(path))
	}
}

// Loader reads configuration documents from a file system.
type Loader struct {
	fs  afero.Fs
	log logger.Logger
}

// New creates a Loader reading from fs.
func New(fs afero.Fs, log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{fs: fs, log: log}
}

// Load reads and parses the document at path.
func (l *Loader) Load(path string) (config.Tree, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		l.log.WithFields(logger.Fields{
			"error": err,
			"path":  path,
		}).Error("Failed to read configuration file")
		return nil, oops.
			In("loader").
			With("path", path).
			Wrapf(err, "failed to read configuration file")
	}

	tree, err := Parse(format, data, path)
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logger.Fields{
		"path":     path,
		"format":   format,
		"sections": len(tree),
	}).Debug("Configuration file loaded")

	return tree, nil
}

// LoadAll loads every path and composes them into one node where earlier
// paths take precedence over later ones. It returns nil when paths is empty.
func (l *Loader) LoadAll(paths []string) (config.Node, error) {
	var node config.Node
	for i := len(paths) - 1; i >= 0; i-- {
		tree, err := l.Load(paths[i])
		if err != nil {
			return nil, err
		}

		source := config.NewSourceConfig(tree)
		if node == nil {
			node = source
		} else {
			node = config.NewCompositeConfig(source, node)
		}
	}
	return node, nil
}
