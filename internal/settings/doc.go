// Package settings holds the runtime settings of the lintconf command line
// tool. These are not the analysis configuration itself: they say where that
// configuration comes from, which overrides to apply and how to present the
// results.
//
// # Loading
//
//	s, err := settings.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment Variables
//
//	LINTCONF_CONFIG        Comma-separated configuration files, earlier files win
//	LINTCONF_WORKERS       Number of concurrent workers (default: CPU cores)
//	LINTCONF_MAX_DEPTH     Maximum directory depth for plan (-1 for unlimited)
//	LINTCONF_IGNORE        Comma-separated ignore globs for plan
//	LINTCONF_OUTPUT        Output format: tree|json|yaml
//	LINTCONF_OUTPUT_FILE   Output file path (empty for stdout)
//	LINTCONF_RATE_LIMIT    Rule evaluations per second (0 for unlimited)
//	LINTCONF_ALL_RULES     Activate every rule (true/false)
//	LINTCONF_FAIL_FAST     Activate every rule and tolerate no issues (true/false)
//	LINTCONF_AUTO_CORRECT  Allow rules to auto-correct (true/false)
//	LINTCONF_NO_COLOR      Disable colored output (true/false)
//	LINTCONF_VERBOSE       Verbosity level (number of 'v's)
//
// Command line flags override the environment when they are set explicitly.
//
// # Validation
//
//   - Workers must be positive and not exceed CPU cores * 4
//   - MaxDepth must be -1 (unlimited) or positive
//   - Output format must be one of: tree, json, yaml
//   - RateLimit must be non-negative
package settings
