package config

import "regexp"

// EmptyConfig stands for "nothing configured". Every lookup yields the
// caller's default, except that an unconfigured rule counts as active.
type EmptyConfig struct{}

// Empty is the shared EmptyConfig instance.
var Empty Node = EmptyConfig{}

func (EmptyConfig) SubConfig(string) Node { return Empty }

func (EmptyConfig) ValueOrDefault(_ string, def any) (any, error) {
	if _, err := KindOf(def); err != nil {
		return nil, err
	}
	return def, nil
}

func (EmptyConfig) ValueOrNull(key string, _ Kind) (any, error) {
	if key == KeyActive {
		return true, nil
	}
	return nil, nil
}

func (EmptyConfig) Validate(Tree, []*regexp.Regexp) []Notification { return nil }

func (EmptyConfig) Path(key string) string { return key }
