// Package scanner lists the source files of a project so rule filters can be
// evaluated against them.
//
// Ignore patterns are globs in the same dialect as rule includes and excludes.
// They are matched against the slash separated path relative to the root and
// against the base name, so ".git" prunes every .git directory while
// "**/generated/**" prunes a subtree.
//
// Basic usage:
//
//	s := scanner.NewScanner(scanner.Config{MaxDepth: -1}, afero.NewOsFs(), log)
//	result, err := s.Scan(ctx, "/path/to/project", []string{".git", "build"})
package scanner

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"

	"github.com/sonemaro/lintconf/pkg/logger"
	"github.com/sonemaro/lintconf/pkg/pathfilter"
)

// Scanner defines the interface for directory scanning operations
type Scanner interface {
	// Scan lists every file below root that is not ignored
	Scan(ctx context.Context, root string, ignorePatterns []string) (Result, error)

	// Progress returns the current scanning progress. It is safe to call
	// while Scan runs.
	Progress() Progress
}

type scanner struct {
	config Config
	fs     afero.Fs
	log    logger.Logger
	stats  *scannerStats
}

// NewScanner creates a Scanner reading from fs.
func NewScanner(config Config, fs afero.Fs, log logger.Logger) Scanner {
	if log == nil {
		log = logger.Nop()
	}
	return &scanner{
		config: config,
		fs:     fs,
		log:    log,
		stats:  &scannerStats{},
	}
}

func (s *scanner) Scan(ctx context.Context, root string, ignorePatterns []string) (Result, error) {
	s.log.WithFields(logger.Fields{
		"path":     root,
		"maxDepth": s.config.MaxDepth,
		"patterns": ignorePatterns,
	}).Info("Starting scan operation")

	start := time.Now()
	s.stats.reset(start)

	result := Result{
		Root:   root,
		Errors: make(map[string]error),
		Stats:  ScanStats{StartTime: start},
	}

	ignore, err := pathfilter.New(nil, ignorePatterns)
	if err != nil {
		return result, fmt.Errorf("invalid ignore pattern: %w", err)
	}

	info, err := s.fs.Stat(root)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
			"path":  root,
		}).Error("Failed to stat root directory")
		return result, &RootError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return result, &RootError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	if err := s.scanDir(ctx, root, "", 0, ignore, &result); err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Scan operation failed")
		return result, fmt.Errorf("scan operation failed: %w", err)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	result.Stats.EndTime = time.Now()
	result.Stats.Duration = result.Stats.EndTime.Sub(result.Stats.StartTime)
	result.Stats.TotalFiles = s.stats.filesFound.Load()
	result.Stats.TotalDirs = s.stats.dirsScanned.Load()
	result.Stats.TotalSize = s.stats.bytesFound.Load()
	result.Stats.SkippedFiles = s.stats.skipped.Load()
	result.Stats.ErrorCount = len(result.Errors)

	s.log.WithFields(logger.Fields{
		"duration":     result.Stats.Duration,
		"totalFiles":   result.Stats.TotalFiles,
		"totalDirs":    result.Stats.TotalDirs,
		"errorCount":   result.Stats.ErrorCount,
		"skippedFiles": result.Stats.SkippedFiles,
	}).Info("Scan operation completed")

	return result, nil
}

// scanDir walks dir, whose path relative to the root is rel.
func (s *scanner) scanDir(ctx context.Context, dir, rel string, depth int, ignore *pathfilter.Filters, result *Result) error {
	s.stats.currentDepth.Store(int32(depth))
	s.stats.currentPath.Store(dir)
	s.stats.dirsScanned.Add(1)

	s.log.WithFields(logger.Fields{
		"path":  dir,
		"depth": depth,
	}).Debug("Scanning directory")

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
			"path":  dir,
		}).Error("Failed to read directory")
		result.Errors[dir] = err
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := filepath.Join(dir, entry.Name())
		entryRel := path.Join(rel, entry.Name())

		if ignore.IsIgnored(entryRel) {
			s.log.WithFields(logger.Fields{
				"path": entryRel,
			}).Debug("Ignoring path")
			s.stats.skipped.Add(1)
			continue
		}

		switch {
		case entry.IsDir():
			if s.config.MaxDepth >= 0 && depth >= s.config.MaxDepth {
				s.log.WithFields(logger.Fields{
					"path":  entryPath,
					"depth": depth,
				}).Debug("Max depth reached")
				result.Errors[entryPath] = &MaxDepthError{Path: entryPath, MaxDepth: s.config.MaxDepth}
				continue
			}
			if err := s.scanDir(ctx, entryPath, entryRel, depth+1, ignore, result); err != nil {
				return err
			}
		case entry.Mode()&os.ModeSymlink != 0:
			s.log.WithFields(logger.Fields{
				"path": entryPath,
			}).Trace("Skipping symlink")
			s.stats.skipped.Add(1)
		default:
			s.stats.filesFound.Add(1)
			s.stats.bytesFound.Add(entry.Size())
			result.Files = append(result.Files, File{Path: entryRel, Size: entry.Size()})
		}
	}

	return nil
}

func (s *scanner) Progress() Progress {
	current, _ := s.stats.currentPath.Load().(string)
	started, _ := s.stats.startTime.Load().(time.Time)
	return Progress{
		CurrentPath:  current,
		FilesFound:   s.stats.filesFound.Load(),
		DirsScanned:  s.stats.dirsScanned.Load(),
		CurrentDepth: int(s.stats.currentDepth.Load()),
		StartTime:    started,
	}
}
