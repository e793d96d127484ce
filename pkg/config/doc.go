/*
Package config resolves and validates the hierarchical rule configuration of
lintconf.

A configuration is a tree of Nodes. Leaves wrap already-parsed documents
(SourceConfig) or stand for "nothing configured" (EmptyConfig); decorators
compose two sources by precedence (CompositeConfig) or force a small set of
reserved keys (AllActiveOverride, FailFastOverride,
DisabledAutoCorrectOverride). Every variant implements the same Node
contract, so a decorator chain is navigated exactly like a single document:

	defaults := config.NewSourceConfig(defaultTree)
	user := config.NewSourceConfig(userTree)

	root := config.Compose(defaults, user, config.ComposeOptions{FailFast: true})

	threshold, err := config.Get(root.SubConfig("complexity").SubConfig("LongMethod"), "threshold", 60)
	if err != nil {
	    // *config.TypeError: Value "sixty" set for config parameter
	    // "complexity > LongMethod > threshold" is not of required type Int.
	}

Lookups coerce raw values to the type of the supplied default. Coercion is
strict: booleans are only read from the literals "true" and "false", and a
value that cannot be coerced is always an error, never silently replaced by
the default.

Validate compares a node against a baseline tree and reports keys that do not
exist in the baseline or whose shape (scalar versus nested section) differs.

Nodes never mutate the documents they wrap and are safe for concurrent use
once built.
*/
package config
