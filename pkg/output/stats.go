package output

import (
	"fmt"

	"github.com/sonemaro/lintconf/pkg/logger"
	"github.com/sonemaro/lintconf/pkg/ruleset"
)

// stats summarizes a result
type stats struct {
	Notifications int   `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	RuleSets      int   `json:"ruleSets,omitempty" yaml:"ruleSets,omitempty"`
	Rules         int   `json:"rules,omitempty" yaml:"rules,omitempty"`
	ActiveRules   int   `json:"activeRules,omitempty" yaml:"activeRules,omitempty"`
	Files         int   `json:"totalFiles,omitempty" yaml:"totalFiles,omitempty"`
	CoveredFiles  int   `json:"coveredFiles,omitempty" yaml:"coveredFiles,omitempty"`
	TotalSize     int64 `json:"totalSize,omitempty" yaml:"totalSize,omitempty"`
}

func (f *formatter) calculateStats(v any) *stats {
	f.log.Debug("Calculating statistics")

	s := &stats{}
	switch val := v.(type) {
	case *ValidationReport:
		s.Notifications = len(val.Notifications)
	case *ruleset.Plan:
		s.RuleSets = len(val.RuleSets)
		s.Rules, s.ActiveRules = val.Count()
	case *FilePlan:
		s.Files = len(val.Files)
		s.TotalSize = val.Scan.TotalSize
		for _, file := range val.Files {
			if len(file.Rules) > 0 {
				s.CoveredFiles++
			}
		}
	}

	f.log.WithFields(logger.Fields{
		"notifications": s.Notifications,
		"rules":         s.Rules,
		"activeRules":   s.ActiveRules,
		"files":         s.Files,
	}).Debug("Statistics calculated")

	return s
}

// formatSize renders a byte count with a binary unit.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
