package scanner

import (
	"sync/atomic"
	"time"
)

// File is a regular file found during a scan.
type File struct {
	// Path is relative to the scan root and slash separated
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// Result contains the complete scan results
type Result struct {
	Root   string           `json:"root" yaml:"root"`
	Files  []File           `json:"files" yaml:"files"`
	Errors map[string]error `json:"-" yaml:"-"`
	Stats  ScanStats        `json:"stats" yaml:"stats"`
}

// Paths returns the relative paths of every file found.
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// ScanStats contains statistics about the scanning operation
type ScanStats struct {
	StartTime    time.Time     `json:"startTime" yaml:"startTime"`
	EndTime      time.Time     `json:"endTime" yaml:"endTime"`
	Duration     time.Duration `json:"duration" yaml:"duration"`
	TotalFiles   int64         `json:"totalFiles" yaml:"totalFiles"`
	TotalDirs    int64         `json:"totalDirs" yaml:"totalDirs"`
	TotalSize    int64         `json:"totalSize" yaml:"totalSize"`
	ErrorCount   int           `json:"errorCount" yaml:"errorCount"`
	SkippedFiles int64         `json:"skippedFiles" yaml:"skippedFiles"`
}

// Config contains scanner configuration options
type Config struct {
	// MaxDepth limits recursion below the root, -1 for unlimited
	MaxDepth int
}

// Progress represents the current progress of the scanning operation
type Progress struct {
	CurrentPath  string
	FilesFound   int64
	DirsScanned  int64
	CurrentDepth int
	StartTime    time.Time
}

// scannerStats holds the atomic counters for scanner statistics
type scannerStats struct {
	filesFound   atomic.Int64
	dirsScanned  atomic.Int64
	skipped      atomic.Int64
	bytesFound   atomic.Int64
	currentDepth atomic.Int32
	currentPath  atomic.Value
	startTime    atomic.Value
}

// reset zeroes the counters for a new scan started at start.
func (s *scannerStats) reset(start time.Time) {
	s.filesFound.Store(0)
	s.dirsScanned.Store(0)
	s.skipped.Store(0)
	s.bytesFound.Store(0)
	s.currentDepth.Store(0)
	s.currentPath.Store("")
	s.startTime.Store(start)
}
