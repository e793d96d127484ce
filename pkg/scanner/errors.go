package scanner

import "fmt"

// RootError is returned when the scan root cannot be used.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid scan root %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// MaxDepthError records a directory that was not descended into because the
// maximum depth was reached.
type MaxDepthError struct {
	Path     string
	MaxDepth int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("max depth %d reached at: %s", e.MaxDepth, e.Path)
}
