package config

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/sonemaro/lintconf/pkg/pattern"
)

// DefaultSeparator joins key names in diagnostic paths.
const DefaultSeparator = " > "

// Reserved keys with a meaning shared by all rules.
const (
	KeyActive      = "active"
	KeyAutoCorrect = "autoCorrect"
	KeyMaxIssues   = "maxIssues"
	KeyIncludes    = "includes"
	KeyExcludes    = "excludes"
	KeySeverity    = "severity"
)

// Node is a level of a configuration tree.
type Node interface {
	// SubConfig returns the section stored under key. It never fails: absent
	// or non-map values yield an empty section.
	SubConfig(key string) Node

	// ValueOrDefault returns the value of key coerced to the type of def, or
	// def itself when the key is not set.
	ValueOrDefault(key string, def any) (any, error)

	// ValueOrNull returns the value of key coerced to kind, or nil when the
	// key is not set.
	ValueOrNull(key string, kind Kind) (any, error)

	// Validate compares the keys of this level against baseline.
	Validate(baseline Tree, excludes []*regexp.Regexp) []Notification

	// Path returns the diagnostic path of key at this level.
	Path(key string) string
}

// Tree is a parsed configuration document. Nested sections are Tree or
// map[string]any values, lists are []any or []string.
type Tree map[string]any

// Sub returns the nested section stored under key.
func (t Tree) Sub(key string) (Tree, bool) {
	return asTree(t[key])
}

// Keys returns the keys of t in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}

// Kind enumerates the value types a lookup can be coerced to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindLong
	KindBool
	KindDouble
	KindList
)

var kindNames = map[Kind]string{
	KindString: "String",
	KindInt:    "Int",
	KindLong:   "Long",
	KindBool:   "Boolean",
	KindDouble: "Double",
	KindList:   "List",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the Kind of a default value.
func KindOf(v any) (Kind, error) {
	switch v.(type) {
	case string:
		return KindString, nil
	case int:
		return KindInt, nil
	case int64:
		return KindLong, nil
	case bool:
		return KindBool, nil
	case float64:
		return KindDouble, nil
	case []string:
		return KindList, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

// Value is the set of Go types a configuration value resolves to.
type Value interface {
	string | int | int64 | bool | float64 | []string
}

// Get resolves key on n with a typed default.
func Get[T Value](n Node, key string, def T) (T, error) {
	var zero T
	v, err := n.ValueOrDefault(key, def)
	if err != nil {
		return zero, err
	}
	return assertValue[T](n, key, v)
}

// Lookup resolves key on n and reports whether it was set.
func Lookup[T Value](n Node, key string) (T, bool, error) {
	var zero T
	kind, err := KindOf(any(zero))
	if err != nil {
		return zero, false, err
	}
	v, err := n.ValueOrNull(key, kind)
	if err != nil || v == nil {
		return zero, false, err
	}
	t, err := assertValue[T](n, key, v)
	return t, err == nil, err
}

func assertValue[T Value](n Node, key string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		kind, _ := KindOf(any(zero))
		return zero, &TypeError{Value: v, Path: n.Path(key), TypeName: kind.String()}
	}
	return t, nil
}

// CommaSeparated resolves key as a list of strings. The value may be a list of
// strings or a single string separated by commas or semicolons. Elements are
// trimmed and empty ones dropped.
func CommaSeparated(n Node, key string, def []string) ([]string, error) {
	v, err := n.ValueOrNull(key, KindList)
	if err == nil {
		if v == nil {
			return def, nil
		}
		list, ok := v.([]string)
		if !ok {
			return nil, &TypeError{Value: v, Path: n.Path(key), TypeName: KindList.String()}
		}
		return pattern.TrimList(list), nil
	}

	var typeErr *TypeError
	if !errors.As(err, &typeErr) {
		return nil, err
	}
	s, serr := n.ValueOrNull(key, KindString)
	if serr != nil {
		return nil, err
	}
	str, ok := s.(string)
	if !ok {
		return nil, err
	}
	return pattern.SplitList(str), nil
}

func joinPath(parent, key, separator string) string {
	if parent == "" {
		return key
	}
	return parent + separator + key
}
