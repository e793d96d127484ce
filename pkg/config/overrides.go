package config

import "regexp"

// AllActiveOverride reports every rule as active, whatever the wrapped
// configuration says.
type AllActiveOverride struct {
	node Node
}

// NewAllActiveOverride wraps node.
func NewAllActiveOverride(node Node) *AllActiveOverride {
	return &AllActiveOverride{node: node}
}

func (o *AllActiveOverride) SubConfig(key string) Node {
	return NewAllActiveOverride(o.node.SubConfig(key))
}

func (o *AllActiveOverride) ValueOrDefault(key string, def any) (any, error) {
	if key == KeyActive {
		return true, nil
	}
	return o.node.ValueOrDefault(key, def)
}

func (o *AllActiveOverride) ValueOrNull(key string, kind Kind) (any, error) {
	if key == KeyActive {
		return true, nil
	}
	return o.node.ValueOrNull(key, kind)
}

func (o *AllActiveOverride) Validate(baseline Tree, excludes []*regexp.Regexp) []Notification {
	return o.node.Validate(baseline, excludes)
}

func (o *AllActiveOverride) Path(key string) string {
	return o.node.Path(key)
}

// FailFastOverride activates every rule and tolerates no issues unless the
// wrapped configuration sets maxIssues explicitly. Other keys fall back to
// defaults when the wrapped configuration lacks them.
type FailFastOverride struct {
	node     Node
	defaults Node
}

// NewFailFastOverride wraps node. A nil defaults node is treated as empty.
func NewFailFastOverride(node, defaults Node) *FailFastOverride {
	if defaults == nil {
		defaults = Empty
	}
	return &FailFastOverride{node: node, defaults: defaults}
}

func (o *FailFastOverride) SubConfig(key string) Node {
	return NewFailFastOverride(o.node.SubConfig(key), o.defaults.SubConfig(key))
}

func (o *FailFastOverride) ValueOrDefault(key string, def any) (any, error) {
	kind, err := KindOf(def)
	if err != nil {
		return nil, err
	}

	switch key {
	case KeyActive:
		return true, nil
	case KeyMaxIssues:
		if v, err := o.ValueOrNull(key, kind); err != nil || v != nil {
			return v, err
		}
	default:
		v, err := o.node.ValueOrNull(key, kind)
		if err != nil || v != nil {
			return v, err
		}
		return o.defaults.ValueOrDefault(key, def)
	}

	return o.node.ValueOrDefault(key, def)
}

func (o *FailFastOverride) ValueOrNull(key string, kind Kind) (any, error) {
	switch key {
	case KeyActive:
		return true, nil
	case KeyMaxIssues:
		v, err := o.node.ValueOrNull(key, kind)
		if err != nil || v != nil {
			return v, err
		}
		return zeroIssues(kind), nil
	default:
		v, err := o.node.ValueOrNull(key, kind)
		if err != nil || v != nil {
			return v, err
		}
		return o.defaults.ValueOrNull(key, kind)
	}
}

func (o *FailFastOverride) Validate(baseline Tree, excludes []*regexp.Regexp) []Notification {
	notifications := o.node.Validate(baseline, excludes)
	return append(notifications, o.defaults.Validate(baseline, excludes)...)
}

func (o *FailFastOverride) Path(key string) string {
	return o.node.Path(key)
}

// zeroIssues returns a zero issue count of the requested numeric kind, or nil
// for kinds that cannot hold a count.
func zeroIssues(kind Kind) any {
	switch kind {
	case KindInt:
		return 0
	case KindLong:
		return int64(0)
	case KindDouble:
		return 0.0
	default:
		return nil
	}
}

// DisabledAutoCorrectOverride turns auto-correction off for every rule.
type DisabledAutoCorrectOverride struct {
	node Node
}

// NewDisabledAutoCorrectOverride wraps node.
func NewDisabledAutoCorrectOverride(node Node) *DisabledAutoCorrectOverride {
	return &DisabledAutoCorrectOverride{node: node}
}

func (o *DisabledAutoCorrectOverride) SubConfig(key string) Node {
	return NewDisabledAutoCorrectOverride(o.node.SubConfig(key))
}

func (o *DisabledAutoCorrectOverride) ValueOrDefault(key string, def any) (any, error) {
	if key == KeyAutoCorrect {
		return false, nil
	}
	return o.node.ValueOrDefault(key, def)
}

func (o *DisabledAutoCorrectOverride) ValueOrNull(key string, kind Kind) (any, error) {
	if key == KeyAutoCorrect {
		return false, nil
	}
	return o.node.ValueOrNull(key, kind)
}

func (o *DisabledAutoCorrectOverride) Validate(baseline Tree, excludes []*regexp.Regexp) []Notification {
	return o.node.Validate(baseline, excludes)
}

func (o *DisabledAutoCorrectOverride) Path(key string) string {
	return o.node.Path(key)
}
