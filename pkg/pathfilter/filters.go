// Package pathfilter decides whether a rule applies to a file based on the
// includes and excludes globs of the rule's configuration.
package pathfilter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sonemaro/lintconf/pkg/config"
	"github.com/sonemaro/lintconf/pkg/pattern"
)

// Filters holds compiled include and exclude globs.
type Filters struct {
	includes []matcher
	excludes []matcher
}

// matcher matches a glob against a path, its base name and, for globs
// starting with "**/", the path without leading directories.
type matcher struct {
	glob *pattern.Glob
	tail *pattern.Glob
}

func (m matcher) match(path string) bool {
	slashPath := filepath.ToSlash(path)
	if m.glob.Match(slashPath) || m.glob.Match(filepath.Base(slashPath)) {
		return true
	}
	return m.tail != nil && m.tail.Match(slashPath)
}

// New compiles includes and excludes. It returns nil when both are empty,
// and a nil *Filters ignores nothing.
func New(includes, excludes []string) (*Filters, error) {
	if len(includes) == 0 && len(excludes) == 0 {
		return nil, nil
	}

	inc, err := compileAll(includes)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exc, err := compileAll(excludes)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	return &Filters{includes: inc, excludes: exc}, nil
}

// FromConfig reads the includes and excludes keys of node. Both accept a list
// or a comma separated string.
func FromConfig(node config.Node) (*Filters, error) {
	includes, err := config.CommaSeparated(node, config.KeyIncludes, nil)
	if err != nil {
		return nil, err
	}
	excludes, err := config.CommaSeparated(node, config.KeyExcludes, nil)
	if err != nil {
		return nil, err
	}
	return New(includes, excludes)
}

func compileAll(globs []string) ([]matcher, error) {
	compiled := make([]matcher, 0, len(globs))
	for _, g := range globs {
		g = filepath.ToSlash(g)
		glob, err := pattern.CompileGlob(g)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", g, err)
		}
		m := matcher{glob: glob}
		if strings.HasPrefix(g, "**/") {
			if m.tail, err = pattern.CompileGlob(strings.TrimPrefix(g, "**/")); err != nil {
				return nil, fmt.Errorf("%q: %w", g, err)
			}
		}
		compiled = append(compiled, m)
	}
	return compiled, nil
}

// IsIgnored reports whether path is filtered out. A path matching an include
// is never ignored; otherwise it is ignored when it matches an exclude, or
// when includes are configured at all.
func (f *Filters) IsIgnored(path string) bool {
	if f == nil {
		return false
	}
	if matchAny(f.includes, path) {
		return false
	}
	if matchAny(f.excludes, path) {
		return true
	}
	return len(f.includes) > 0
}

// Includes returns the include globs as written.
func (f *Filters) Includes() []string {
	if f == nil {
		return nil
	}
	return sources(f.includes)
}

// Excludes returns the exclude globs as written.
func (f *Filters) Excludes() []string {
	if f == nil {
		return nil
	}
	return sources(f.excludes)
}

func sources(matchers []matcher) []string {
	result := make([]string, 0, len(matchers))
	for _, m := range matchers {
		result = append(result, m.glob.String())
	}
	return result
}

func matchAny(matchers []matcher, path string) bool {
	for _, m := range matchers {
		if m.match(path) {
			return true
		}
	}
	return false
}
