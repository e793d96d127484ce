package config

// ComposeOptions selects the overrides applied by Compose.
type ComposeOptions struct {
	// AllRules activates every rule.
	AllRules bool

	// FailFast activates every rule and defaults maxIssues to zero.
	FailFast bool

	// AutoCorrect permits rules to rewrite sources. When false every rule's
	// autoCorrect is forced off.
	AutoCorrect bool
}

// Compose builds the effective configuration of a run: user over defaults,
// wrapped in the overrides selected by opts. A nil user node means no user
// configuration was given. With FailFast the user node is wrapped directly,
// so a maxIssues set only in defaults does not relax zero tolerance.
func Compose(defaults, user Node, opts ComposeOptions) Node {
	if defaults == nil {
		defaults = Empty
	}

	var root Node
	switch {
	case opts.FailFast:
		// maxIssues resolves from the user alone, defaults only back other keys
		if user == nil {
			user = Empty
		}
		root = NewFailFastOverride(user, defaults)
	case user != nil:
		root = NewCompositeConfig(user, defaults)
	default:
		root = defaults
	}
	if opts.AllRules {
		root = NewAllActiveOverride(root)
	}
	if !opts.AutoCorrect {
		root = NewDisabledAutoCorrectOverride(root)
	}
	return root
}
