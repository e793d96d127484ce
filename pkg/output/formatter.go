/*
Package output renders the results of lintconf commands as a colored tree,
JSON or YAML.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:     output.FormatTree,
		WithStats:  true,
		WithColors: true,
		RunID:      runID,
	}, log)

	text, err := formatter.Format(&output.ValidationReport{Notifications: n})

Format accepts a *ValidationReport, a *ruleset.Plan, a *FilePlan or a
*ValueReport.
*/
package output

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/sonemaro/lintconf/pkg/config"
	"github.com/sonemaro/lintconf/pkg/logger"
	"github.com/sonemaro/lintconf/pkg/ruleset"
	"github.com/sonemaro/lintconf/pkg/scanner"
)

// Format represents the output format type
type Format string

const (
	FormatTree Format = "tree"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatTree, FormatJSON, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithStats  bool
	WithColors bool

	// RunID identifies the run in structured output. Empty omits it.
	RunID string

	// Now stamps structured output. Defaults to time.Now.
	Now func() time.Time
}

// ValidationReport is the outcome of validating a configuration.
type ValidationReport struct {
	Sources          []string              `json:"sources" yaml:"sources"`
	Notifications    []config.Notification `json:"notifications" yaml:"notifications"`
	WarningsAsErrors bool                  `json:"warningsAsErrors" yaml:"warningsAsErrors"`
}

// Failed reports whether the notifications should fail the run.
func (r *ValidationReport) Failed() bool {
	return r.WarningsAsErrors && len(r.Notifications) > 0
}

// FileRules lists the rules that apply to one file.
type FileRules struct {
	Path  string   `json:"path" yaml:"path"`
	Rules []string `json:"rules" yaml:"rules"`
}

// FilePlan maps every scanned file to its applicable rules.
type FilePlan struct {
	Root  string            `json:"root" yaml:"root"`
	Files []FileRules       `json:"files" yaml:"files"`
	Scan  scanner.ScanStats `json:"scan" yaml:"scan"`
}

// ValueReport is a single resolved configuration value.
type ValueReport struct {
	Path  string `json:"path" yaml:"path"`
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
	Set   bool   `json:"set" yaml:"set"`
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(v any) (string, error)
}

type formatter struct {
	config  Config
	log     logger.Logger
	palette palette
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	if log == nil {
		log = logger.Nop()
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &formatter{
		config:  config,
		log:     log,
		palette: newPalette(config.WithColors),
	}
}

func (f *formatter) Format(v any) (string, error) {
	if err := checkSupported(v); err != nil {
		f.log.Error(err.Error())
		return "", err
	}

	f.log.WithFields(logger.Fields{
		"format":     f.config.Format,
		"withStats":  f.config.WithStats,
		"withColors": f.config.WithColors,
		"kind":       kindOf(v),
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatTree:
		return f.formatTree(v)
	case FormatJSON:
		return f.formatJSON(v)
	case FormatYAML:
		return f.formatYAML(v)
	default:
		err := fmt.Errorf("unsupported format: %s", f.config.Format)
		f.log.Error(err.Error())
		return "", err
	}
}

func checkSupported(v any) error {
	switch val := v.(type) {
	case *ValidationReport:
		if val == nil {
			return fmt.Errorf("nil validation report provided for formatting")
		}
	case *ruleset.Plan:
		if val == nil {
			return fmt.Errorf("nil rule plan provided for formatting")
		}
	case *FilePlan:
		if val == nil {
			return fmt.Errorf("nil file plan provided for formatting")
		}
	case *ValueReport:
		if val == nil {
			return fmt.Errorf("nil value provided for formatting")
		}
	case nil:
		return fmt.Errorf("nil result provided for formatting")
	default:
		return fmt.Errorf("unsupported result type %T", v)
	}
	return nil
}

func kindOf(v any) string {
	switch v.(type) {
	case *ValidationReport:
		return "validation"
	case *ruleset.Plan:
		return "rules"
	case *FilePlan:
		return "plan"
	case *ValueReport:
		return "value"
	default:
		return "unknown"
	}
}

// palette holds the colors of the tree renderer.
type palette struct {
	dir      *color.Color
	active   *color.Color
	inactive *color.Color
	warning  *color.Color
	path     *color.Color
	faint    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		dir:      color.New(color.FgBlue, color.Bold),
		active:   color.New(color.FgGreen),
		inactive: color.New(color.FgRed),
		warning:  color.New(color.FgYellow),
		path:     color.New(color.Bold),
		faint:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.dir, p.active, p.inactive, p.warning, p.path, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
