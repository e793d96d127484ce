package config

import "regexp"

// SourceConfig wraps one level of a parsed document.
type SourceConfig struct {
	tree       Tree
	parentPath string
	separator  string
}

// Option configures a SourceConfig.
type Option func(*SourceConfig)

// WithSeparator sets the separator used to build diagnostic paths.
func WithSeparator(sep string) Option {
	return func(c *SourceConfig) {
		c.separator = sep
	}
}

// WithParentPath sets the diagnostic path of the wrapped level.
func WithParentPath(path string) Option {
	return func(c *SourceConfig) {
		c.parentPath = path
	}
}

// NewSourceConfig wraps tree. A nil tree behaves like an empty document.
func NewSourceConfig(tree Tree, opts ...Option) *SourceConfig {
	c := &SourceConfig{
		tree:      tree,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tree == nil {
		c.tree = Tree{}
	}
	return c
}

func (c *SourceConfig) SubConfig(key string) Node {
	sub, ok := c.tree.Sub(key)
	if !ok {
		sub = Tree{}
	}
	return &SourceConfig{
		tree:       sub,
		parentPath: c.Path(key),
		separator:  c.separator,
	}
}

func (c *SourceConfig) ValueOrDefault(key string, def any) (any, error) {
	kind, err := KindOf(def)
	if err != nil {
		return nil, err
	}
	v, err := c.ValueOrNull(key, kind)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return def, nil
	}
	return v, nil
}

func (c *SourceConfig) ValueOrNull(key string, kind Kind) (any, error) {
	raw, ok := c.tree[key]
	if !ok || raw == nil {
		return nil, nil
	}
	return coerce(raw, kind, c.Path(key))
}

func (c *SourceConfig) Validate(baseline Tree, excludes []*regexp.Regexp) []Notification {
	return validateTree(c.tree, baseline, excludes, c.parentPath, c.separator)
}

func (c *SourceConfig) Path(key string) string {
	return joinPath(c.parentPath, key, c.separator)
}
