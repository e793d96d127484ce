package config

import "regexp"

// CompositeConfig resolves keys from primary first and falls back to
// secondary. Sections are composed recursively, so a nested key set in
// primary does not hide its siblings in secondary.
type CompositeConfig struct {
	primary   Node
	secondary Node
}

// NewCompositeConfig returns a node where primary takes precedence over
// secondary.
func NewCompositeConfig(primary, secondary Node) *CompositeConfig {
	return &CompositeConfig{primary: primary, secondary: secondary}
}

func (c *CompositeConfig) SubConfig(key string) Node {
	return NewCompositeConfig(c.primary.SubConfig(key), c.secondary.SubConfig(key))
}

func (c *CompositeConfig) ValueOrDefault(key string, def any) (any, error) {
	kind, err := KindOf(def)
	if err != nil {
		return nil, err
	}
	v, err := c.primary.ValueOrNull(key, kind)
	if err != nil || v != nil {
		return v, err
	}
	return c.secondary.ValueOrDefault(key, def)
}

func (c *CompositeConfig) ValueOrNull(key string, kind Kind) (any, error) {
	v, err := c.primary.ValueOrNull(key, kind)
	if err != nil || v != nil {
		return v, err
	}
	return c.secondary.ValueOrNull(key, kind)
}

func (c *CompositeConfig) Validate(baseline Tree, excludes []*regexp.Regexp) []Notification {
	notifications := c.primary.Validate(baseline, excludes)
	return append(notifications, c.secondary.Validate(baseline, excludes)...)
}

func (c *CompositeConfig) Path(key string) string {
	return c.primary.Path(key)
}
