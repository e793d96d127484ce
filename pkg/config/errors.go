package config

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a default value is not one of the
// supported value types.
var ErrUnsupportedType = errors.New("unsupported config value type")

// TypeError reports a raw value that cannot be coerced to the requested type.
type TypeError struct {
	Value    any
	Path     string
	TypeName string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Value \"%v\" set for config parameter \"%s\" is not of required type %s.",
		e.Value, e.Path, e.TypeName)
}

// StructureError reports a configuration that is unusable as a whole: a
// document that is not a map or a missing validation baseline.
type StructureError struct {
	Source string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid configuration structure: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration structure in %s: %s", e.Source, e.Reason)
}
