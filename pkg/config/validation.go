package config

import (
	"fmt"
	"regexp"
)

// Reason classifies a Notification.
type Reason string

const (
	// ReasonMisspelled marks a key missing from the baseline.
	ReasonMisspelled Reason = "misspelled"

	// ReasonNestedExpected marks a scalar where the baseline has a section.
	ReasonNestedExpected Reason = "nested-expected"

	// ReasonUnexpectedNested marks a section where the baseline has a scalar.
	ReasonUnexpectedNested Reason = "unexpected-nested"
)

// Notification is a single validation finding.
type Notification struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	Reason  Reason `json:"reason" yaml:"reason"`
}

func (n Notification) String() string {
	return n.Message
}

// Validate compares node against baseline and returns a notification for
// every key that is not part of the baseline or whose shape differs from it.
// Paths fully matched by one of excludes are skipped together with everything
// below them. An empty baseline is a StructureError.
func Validate(node Node, baseline Tree, excludes []*regexp.Regexp) ([]Notification, error) {
	if len(baseline) == 0 {
		return nil, &StructureError{Source: "baseline", Reason: "validation requires a non-empty baseline"}
	}
	if node == nil {
		return nil, nil
	}
	return node.Validate(baseline, excludes), nil
}

func validateTree(tree, baseline Tree, excludes []*regexp.Regexp, parentPath, separator string) []Notification {
	var notifications []Notification

	for _, key := range tree.Keys() {
		path := joinPath(parentPath, key, separator)
		if excluded(path, excludes) {
			continue
		}

		expected, ok := baseline[key]
		if !ok {
			notifications = append(notifications, Notification{
				Path:    path,
				Message: fmt.Sprintf("Property '%s' is misspelled or does not exist.", path),
				Reason:  ReasonMisspelled,
			})
			continue
		}

		sub, isTree := asTree(tree[key])
		baseSub, baseIsTree := asTree(expected)

		switch {
		case !isTree && baseIsTree:
			notifications = append(notifications, Notification{
				Path:    path,
				Message: fmt.Sprintf("Nested config expected for '%s'.", path),
				Reason:  ReasonNestedExpected,
			})
		case isTree && !baseIsTree:
			notifications = append(notifications, Notification{
				Path:    path,
				Message: fmt.Sprintf("Unexpected nested config for '%s'.", path),
				Reason:  ReasonUnexpectedNested,
			})
		case isTree && baseIsTree:
			notifications = append(notifications, validateTree(sub, baseSub, excludes, path, separator)...)
		}
	}

	return notifications
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// CompileExclusions compiles validation exclusion patterns. Every pattern has
// to match a whole path.
func CompileExclusions(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// DefaultExclusions returns the exclusion patterns for keys any rule may carry
// and for free-form sections, built for the given path separator.
func DefaultExclusions(separator string) []string {
	sep := regexp.QuoteMeta(separator)
	return []string{
		".*" + sep + "(" + KeyActive + "|" + KeyAutoCorrect + "|" + KeySeverity + "|" +
			KeyIncludes + "|" + KeyExcludes + "|aliases)",
		"build" + sep + "weights(" + sep + ".*)?",
	}
}
