package settings

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/sonemaro/lintconf/pkg/pattern"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "LINTCONF"

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4

	// UnlimitedDepth represents unlimited directory depth
	UnlimitedDepth = -1
)

// DefaultIgnore is the ignore list used by plan when none is given.
var DefaultIgnore = []string{".git", ".idea", ".gradle", "node_modules", "build", "vendor"}

var validOutputFormats = map[string]bool{
	"tree": true,
	"json": true,
	"yaml": true,
}

// Settings holds all runtime parameters of the tool
type Settings struct {
	// ConfigPaths are user configuration files, earlier files win
	ConfigPaths []string

	// Workers is the number of concurrent rule evaluators
	Workers int

	// MaxDepth is the maximum directory depth to scan (-1 for unlimited)
	MaxDepth int

	// IgnorePatterns are globs pruned while scanning
	IgnorePatterns []string

	// Output specifies the output format (tree, json, or yaml)
	Output string

	// OutputFile is the path to write the output (empty for stdout)
	OutputFile string

	// RateLimit is the maximum number of evaluations per second (0 for unlimited)
	RateLimit int

	// AllRules activates every rule
	AllRules bool

	// FailFast activates every rule and defaults maxIssues to zero
	FailFast bool

	// AutoCorrect lets rules rewrite sources
	AutoCorrect bool

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int
}

// Load reads settings from environment variables and validates them
func Load() (Settings, error) {
	v := viper.New()

	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("max_depth", UnlimitedDepth)
	v.SetDefault("output", "tree")
	v.SetDefault("rate_limit", 0)
	v.SetDefault("all_rules", false)
	v.SetDefault("fail_fast", false)
	v.SetDefault("auto_correct", false)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{
		"config", "workers", "max_depth", "ignore", "output", "output_file",
		"rate_limit", "all_rules", "fail_fast", "auto_correct", "no_color", "verbose",
	} {
		_ = v.BindEnv(key)
	}

	// verbosity may be given as a string of 'v's
	if verboseStr := v.GetString("verbose"); verboseStr != "" && strings.Trim(verboseStr, "v") == "" {
		v.Set("verbose", len(verboseStr))
	}

	s := Settings{
		ConfigPaths: pattern.SplitListWith(v.GetString("config"), ","),
		Workers:     v.GetInt("workers"),
		MaxDepth:    v.GetInt("max_depth"),
		Output:      v.GetString("output"),
		OutputFile:  v.GetString("output_file"),
		RateLimit:   v.GetInt("rate_limit"),
		AllRules:    v.GetBool("all_rules"),
		FailFast:    v.GetBool("fail_fast"),
		AutoCorrect: v.GetBool("auto_correct"),
		NoColor:     v.GetBool("no_color"),
		Verbose:     v.GetInt("verbose"),
	}

	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}

	if ignoreStr := v.GetString("ignore"); ignoreStr != "" {
		s.IgnorePatterns = pattern.SplitListWith(ignoreStr, ",")
	} else {
		s.IgnorePatterns = append([]string(nil), DefaultIgnore...)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks if the settings are valid
func (s Settings) Validate() error {
	if s.Workers <= 0 {
		return fmt.Errorf("workers count must be positive")
	}
	if s.Workers > runtime.NumCPU()*MaxWorkerMultiplier {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}

	if s.MaxDepth < UnlimitedDepth {
		return fmt.Errorf("max depth must be -1 (unlimited) or positive")
	}

	if !validOutputFormats[s.Output] {
		return fmt.Errorf("invalid output format: must be one of [tree json yaml]")
	}

	if s.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	return nil
}

func (s Settings) String() string {
	return fmt.Sprintf(
		"Settings{ConfigPaths: %v, Workers: %d, MaxDepth: %d, Output: %s, "+
			"RateLimit: %d, AllRules: %v, FailFast: %v, AutoCorrect: %v, "+
			"NoColor: %v, Verbose: %d, IgnorePatterns: %v, OutputFile: %s}",
		s.ConfigPaths, s.Workers, s.MaxDepth, s.Output,
		s.RateLimit, s.AllRules, s.FailFast, s.AutoCorrect,
		s.NoColor, s.Verbose, s.IgnorePatterns, s.OutputFile,
	)
}
