/*
Package app provides the application container of lintconf. It builds the
configuration chain of a run once and serves the validate, get, rules and
plan operations on top of it.

The chain is composed from three layers:
  - the embedded default configuration, which is also the validation baseline
  - the user files given with --config, earlier files winning
  - the overrides selected by --all-rules, --fail-fast and --auto-correct

Usage:

	a, err := app.New(s)
	if err != nil {
	    return err
	}
	defer a.Shutdown()
	return a.Validate()
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/sonemaro/lintconf/internal/settings"
	"github.com/sonemaro/lintconf/pkg/config"
	"github.com/sonemaro/lintconf/pkg/loader"
	"github.com/sonemaro/lintconf/pkg/logger"
	"github.com/sonemaro/lintconf/pkg/output"
	"github.com/sonemaro/lintconf/pkg/progress"
	"github.com/sonemaro/lintconf/pkg/ruleset"
	"github.com/sonemaro/lintconf/pkg/scanner"
	"github.com/sonemaro/lintconf/pkg/worker"
)

const (
	// PathSeparator joins the keys of a configuration path.
	PathSeparator = " > "

	// scanRefresh is how often the progress line samples a running scan.
	scanRefresh = 100 * time.Millisecond

	configSection       = "config"
	keyValidation       = "validation"
	keyWarningsAsErrors = "warningsAsErrors"
)

// ErrValidationFailed is returned by Validate when warningsAsErrors is set
// and the configuration has problems.
var ErrValidationFailed = errors.New("configuration validation failed")

// App represents the main application container
type App struct {
	settings settings.Settings
	log      logger.Logger
	fs       afero.Fs
	stdout   io.Writer
	stderr   io.Writer
	runID    string

	formatter output.Formatter
	progress  progress.Progress

	ctx        context.Context
	cancel     context.CancelFunc
	signals    bool
	stopSignal func()
	mu         sync.Mutex
	closed     bool
}

// Option customizes an App.
type Option func(*App)

// WithFs replaces the filesystem used for configuration files, scans and
// output files.
func WithFs(fs afero.Fs) Option {
	return func(a *App) { a.fs = fs }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithStdout sets the writer results are printed to when no output file is set.
func WithStdout(w io.Writer) Option {
	return func(a *App) { a.stdout = w }
}

// WithStderr sets the writer progress is drawn on.
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// WithSignals installs SIGINT and SIGTERM handling that cancels running
// operations.
func WithSignals() Option {
	return func(a *App) { a.signals = true }
}

// New creates a new application instance
func New(s settings.Settings, opts ...Option) (*App, error) {
	format, err := output.ParseFormat(s.Output)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		settings: s,
		fs:       afero.NewOsFs(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		runID:    uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.NewLogger(logger.Config{Verbosity: s.Verbose, Output: a.stderr})
	}
	a.log = a.log.WithFields(logger.Fields{"run": a.runID})

	a.formatter = output.NewFormatter(output.Config{
		Format:     format,
		WithStats:  true,
		WithColors: a.colorsEnabled(),
		RunID:      a.runID,
	}, a.log)

	a.progress = progress.New(progress.Config{
		Style:   progress.StyleBar,
		NoColor: s.NoColor,
		Writer:  a.stderr,
	}, a.log)
	// progress and log lines would interleave on the same terminal
	if !a.progress.IsSupportedTerminal() || s.Verbose > 0 {
		a.progress = progress.Nop()
	}

	if a.signals {
		a.stopSignal = a.setupSignalHandling()
	}

	a.log.WithFields(logger.Fields{
		"settings": s.String(),
		"format":   format,
	}).Debug("Application initialized")

	return a, nil
}

// Shutdown cancels running operations and releases signal handlers. It is
// safe to call more than once.
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	a.cancel()
	a.progress.Stop()
	if a.stopSignal != nil {
		a.stopSignal()
	}

	a.log.Debug("Shutdown complete")
	_ = a.log.Sync()
	return nil
}

// chain is the configuration of one run.
type chain struct {
	baseline config.Tree
	root     config.Node
	user     config.Node
}

func (a *App) buildChain() (*chain, error) {
	baseline, err := loader.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	user, err := loader.New(a.fs, a.log).LoadAll(a.settings.ConfigPaths)
	if err != nil {
		return nil, err
	}

	defaults := config.NewSourceConfig(baseline, config.WithSeparator(PathSeparator))
	root := config.Compose(defaults, user, config.ComposeOptions{
		AllRules:    a.settings.AllRules,
		FailFast:    a.settings.FailFast,
		AutoCorrect: a.settings.AutoCorrect,
	})

	a.log.WithFields(logger.Fields{
		"sources":     a.settings.ConfigPaths,
		"allRules":    a.settings.AllRules,
		"failFast":    a.settings.FailFast,
		"autoCorrect": a.settings.AutoCorrect,
	}).Debug("Configuration chain built")

	return &chain{baseline: baseline, root: root, user: user}, nil
}

// Validate checks the user configuration against the defaults and prints
// the problems found.
func (a *App) Validate() error {
	ch, err := a.buildChain()
	if err != nil {
		return err
	}

	report, err := a.validate(ch)
	if err != nil {
		return err
	}

	if err := a.emit(report); err != nil {
		return err
	}

	if report.Failed() {
		return fmt.Errorf("%w: %d problem(s)", ErrValidationFailed, len(report.Notifications))
	}
	return nil
}

func (a *App) validate(ch *chain) (*output.ValidationReport, error) {
	section := ch.root.SubConfig(configSection)

	enabled, err := config.Get(section, keyValidation, true)
	if err != nil {
		return nil, err
	}
	warningsAsErrors, err := config.Get(section, keyWarningsAsErrors, false)
	if err != nil {
		return nil, err
	}

	report := &output.ValidationReport{
		Sources:          append([]string(nil), a.settings.ConfigPaths...),
		WarningsAsErrors: warningsAsErrors,
	}
	if !enabled || ch.user == nil {
		a.log.WithFields(logger.Fields{
			"enabled": enabled,
			"sources": len(a.settings.ConfigPaths),
		}).Info("Validation skipped")
		return report, nil
	}

	userExcludes, err := config.CommaSeparated(section, config.KeyExcludes, nil)
	if err != nil {
		return nil, err
	}
	excludes, err := config.CompileExclusions(append(config.DefaultExclusions(PathSeparator), userExcludes...))
	if err != nil {
		return nil, err
	}

	notifications, err := config.Validate(ch.user, ch.baseline, excludes)
	if err != nil {
		return nil, err
	}
	report.Notifications = notifications

	a.log.WithFields(logger.Fields{
		"notifications":    len(notifications),
		"warningsAsErrors": warningsAsErrors,
	}).Info("Validation completed")

	return report, nil
}

// Get resolves a dotted key path such as "style.MagicNumber.active" and
// prints its value. kind is one of the names returned by ValueKinds.
func (a *App) Get(path, kind string) error {
	keys := strings.Split(path, ".")
	for _, k := range keys {
		if k == "" {
			return fmt.Errorf("invalid key path %q", path)
		}
	}

	ch, err := a.buildChain()
	if err != nil {
		return err
	}

	node := ch.root
	for _, k := range keys[:len(keys)-1] {
		node = node.SubConfig(k)
	}
	key := keys[len(keys)-1]

	value, resolved, set, err := lookup(node, key, kind)
	if err != nil {
		return err
	}

	a.log.WithFields(logger.Fields{
		"path": node.Path(key),
		"type": resolved,
		"set":  set,
	}).Debug("Value resolved")

	return a.emit(&output.ValueReport{
		Path:  node.Path(key),
		Type:  resolved,
		Value: value,
		Set:   set,
	})
}

// Rules prints the resolved rule sets narrowed by only and skip, see
// ruleset.Selector for the word syntax.
func (a *App) Rules(only, skip string) error {
	ch, err := a.buildChain()
	if err != nil {
		return err
	}

	plan, err := ruleset.Resolve(ch.root, ch.baseline)
	if err != nil {
		return err
	}

	sel := ruleset.NewSelector(only, skip)
	if missing := sel.Unmatched(plan.RuleNames()); len(missing) > 0 {
		a.log.WithFields(logger.Fields{
			"words": missing,
		}).Warn("No rule matches")
	}
	plan = plan.Select(sel)

	total, active := plan.Count()
	a.log.WithFields(logger.Fields{
		"only":      only,
		"skip":      skip,
		"ruleSets":  len(plan.RuleSets),
		"rules":     total,
		"active":    active,
		"maxIssues": plan.MaxIssues,
	}).Info("Rules resolved")

	return a.emit(plan)
}

// Defaults prints the built-in configuration as written, the template user
// files are checked against. The output format does not apply.
func (a *App) Defaults() error {
	content := loader.DefaultBytes()
	a.log.WithFields(logger.Fields{
		"source": loader.DefaultConfigName,
		"bytes":  len(content),
	}).Debug("Printing defaults")

	if err := a.writeOutput(string(content), a.settings.OutputFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Plan scans root and prints, per file, the active rules whose filters
// admit it.
func (a *App) Plan(root string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logger.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Recovered from panic")
			err = fmt.Errorf("plan failed: %v", r)
		}
	}()

	ch, err := a.buildChain()
	if err != nil {
		return err
	}
	plan, err := ruleset.Resolve(ch.root, ch.baseline)
	if err != nil {
		return err
	}
	rules := plan.ActiveRules()

	s := scanner.NewScanner(scanner.Config{MaxDepth: a.settings.MaxDepth}, a.fs, a.log)
	a.progress.Start("Scanning " + root)
	stopWatch := a.watchScan(s)
	result, err := s.Scan(a.ctx, root, a.settings.IgnorePatterns)
	stopWatch()
	if err != nil {
		a.progress.Error(fmt.Sprintf("Scan failed: %v", err))
		return fmt.Errorf("scan operation failed: %w", err)
	}
	for p, scanErr := range result.Errors {
		a.log.WithFields(logger.Fields{"path": p}).WithError(scanErr).Warn("Scan problem")
	}

	// filters are written against absolute paths, e.g. "**/test/**"
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	absRoot = filepath.ToSlash(absRoot)

	a.progress.Start("Evaluating rules")
	total := int64(len(result.Files))
	var done atomic.Int64

	files, stats, err := worker.Map(a.ctx, worker.Config{
		Workers:   a.settings.Workers,
		RateLimit: a.settings.RateLimit,
	}, result.Files, func(ctx context.Context, f scanner.File) (output.FileRules, error) {
		if err := ctx.Err(); err != nil {
			return output.FileRules{}, err
		}
		fr := output.FileRules{Path: f.Path}
		abs := path.Join(absRoot, f.Path)
		for _, r := range rules {
			if r.Applies(abs) {
				fr.Rules = append(fr.Rules, r.Name)
			}
		}
		a.progress.Update(progress.Status{Current: done.Add(1), Total: total, CurrentItem: f.Path})
		return fr, nil
	})
	a.log.WithFields(logger.Fields{
		"completed": stats.CompletedTasks,
		"failed":    stats.FailedTasks,
		"queued":    stats.QueuedTasks,
		"status":    stats.Status,
		"uptime":    stats.Uptime,
	}).Debug("Worker pool drained")
	if err != nil {
		a.progress.Error(fmt.Sprintf("Evaluation failed: %v", err))
		return fmt.Errorf("rule evaluation failed: %w", err)
	}
	a.progress.Complete(fmt.Sprintf("Evaluated %d files against %d rules", total, len(rules)))

	a.log.WithFields(logger.Fields{
		"files":    result.Stats.TotalFiles,
		"dirs":     result.Stats.TotalDirs,
		"rules":    len(rules),
		"duration": result.Stats.Duration,
		"errors":   len(result.Errors),
	}).Info("Plan completed")

	return a.emit(&output.FilePlan{Root: root, Files: files, Scan: result.Stats})
}

// watchScan mirrors the scanner's progress on the progress line until the
// returned function is called.
func (a *App) watchScan(s scanner.Scanner) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		ticker := time.NewTicker(scanRefresh)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := s.Progress()
				a.progress.Update(progress.Status{Current: p.FilesFound, CurrentItem: p.CurrentPath})
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func (a *App) emit(v any) error {
	content, err := a.formatter.Format(v)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}
	if err := a.writeOutput(content, a.settings.OutputFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeOutput writes the formatted output to the specified destination
func (a *App) writeOutput(content string, outputPath string) error {
	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Writing output")

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if outputPath == "" {
		_, err := io.WriteString(a.stdout, content)
		return err
	}

	if err := a.validateOutputPath(outputPath); err != nil {
		return err
	}
	return afero.WriteFile(a.fs, outputPath, []byte(content), 0o644)
}

// validateOutputPath checks that the parent of outputPath is an existing
// directory and that outputPath itself is not one.
func (a *App) validateOutputPath(outputPath string) error {
	dir := filepath.Dir(outputPath)
	info, err := a.fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory does not exist: %s", dir)
		}
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path parent is not a directory: %s", dir)
	}

	if info, err := a.fs.Stat(outputPath); err == nil && info.IsDir() {
		return fmt.Errorf("output path is a directory: %s", outputPath)
	}
	return nil
}

func (a *App) colorsEnabled() bool {
	if a.settings.NoColor || a.settings.OutputFile != "" {
		return false
	}
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
