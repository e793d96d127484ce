package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sonemaro/lintconf/cmd/lintconf/app"
	"github.com/sonemaro/lintconf/internal/settings"
	"github.com/sonemaro/lintconf/internal/version"
	"github.com/sonemaro/lintconf/pkg/logger"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Settings settings.Settings
	Log      logger.Logger

	fs      afero.Fs
	signals bool

	configPaths []string
	workers     int
	maxDepth    int
	ignore      []string
	output      string
	outputFile  string
	rateLimit   int
	allRules    bool
	failFast    bool
	autoCorrect bool
	noColor     bool
	verbose     int
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	return newRootCommand(afero.NewOsFs(), true)
}

func newRootCommand(fs afero.Fs, signals bool) *cobra.Command {
	opts := &Options{fs: fs, signals: signals}

	rootCmd := &cobra.Command{
		Use:   "lintconf [command] [flags]",
		Short: "Configuration resolver and validator for static analysis rules",
		Long: `lintconf v` + version.Version + `

Resolves layered static analysis configuration. User files given with --config
are composed over the built-in defaults, earlier files winning, and the result
can be validated against the defaults, queried key by key, expanded into rule
sets or matched against the files of a project.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVar(&opts.configPaths, "config", nil,
		"comma separated configuration files, earlier files win")
	flags.BoolVar(&opts.allRules, "all-rules", false,
		"activate every rule")
	flags.BoolVar(&opts.failFast, "fail-fast", false,
		"activate every rule and default maxIssues to 0")
	flags.BoolVar(&opts.autoCorrect, "auto-correct", false,
		"allow rules to correct sources")
	flags.StringVarP(&opts.output, "output", "o", "tree",
		"output format (tree, json, yaml)")
	flags.StringVarP(&opts.outputFile, "output-file", "f", "",
		"write output to file instead of stdout")
	flags.IntVarP(&opts.workers, "workers", "w", 0,
		"number of concurrent rule evaluators (default: number of CPUs)")
	flags.IntVar(&opts.rateLimit, "rate-limit", 0,
		"maximum file evaluations per second (0 for unlimited)")
	flags.IntVar(&opts.maxDepth, "max-depth", settings.UnlimitedDepth,
		"maximum directory depth to scan (-1 for unlimited)")
	flags.StringSliceVar(&opts.ignore, "ignore", nil,
		"glob patterns pruned while scanning")
	flags.CountVarP(&opts.verbose, "verbose", "v",
		"enable verbose output (can be used multiple times)")
	flags.BoolVar(&opts.noColor, "no-color", false,
		"disable colored output")

	rootCmd.AddCommand(
		newValidateCommand(opts),
		newGetCommand(opts),
		newRulesCommand(opts),
		newPlanCommand(opts),
		newDefaultsCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand loads settings from the environment and lets the flags
// that were set on the command line override them.
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	s, err := settings.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("config") {
		s.ConfigPaths = opts.configPaths
	}
	if flags.Changed("all-rules") {
		s.AllRules = opts.allRules
	}
	if flags.Changed("fail-fast") {
		s.FailFast = opts.failFast
	}
	if flags.Changed("auto-correct") {
		s.AutoCorrect = opts.autoCorrect
	}
	if flags.Changed("output") {
		s.Output = opts.output
	}
	if flags.Changed("output-file") {
		s.OutputFile = opts.outputFile
	}
	if flags.Changed("workers") {
		s.Workers = opts.workers
	}
	if flags.Changed("rate-limit") {
		s.RateLimit = opts.rateLimit
	}
	if flags.Changed("max-depth") {
		s.MaxDepth = opts.maxDepth
	}
	if flags.Changed("ignore") {
		s.IgnorePatterns = opts.ignore
	}
	if flags.Changed("verbose") {
		s.Verbose = opts.verbose
	}
	if flags.Changed("no-color") {
		s.NoColor = opts.noColor
	}

	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	opts.Settings = s

	opts.Log = logger.NewLogger(logger.Config{
		Verbosity: s.Verbose,
		Output:    cmd.ErrOrStderr(),
	})
	opts.Log.WithFields(logger.Fields{
		"verbosity": s.Verbose,
		"command":   cmd.Name(),
	}).Debug("Initializing command")

	return nil
}

// run creates the application for cmd, runs fn on it and shuts it down.
func run(cmd *cobra.Command, opts *Options, fn func(*app.App) error) error {
	appOpts := []app.Option{
		app.WithFs(opts.fs),
		app.WithLogger(opts.Log),
		app.WithStdout(cmd.OutOrStdout()),
		app.WithStderr(cmd.ErrOrStderr()),
	}
	if opts.signals {
		appOpts = append(appOpts, app.WithSignals())
	}

	a, err := app.New(opts.Settings, appOpts...)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	return fn(a)
}
