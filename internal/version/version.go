// Package version reports build information of the lintconf binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// These variables are set during build time
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
	GitBranch = "unknown"
)

// BuildInfo contains build and runtime information
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	SemVer    string `json:"semver" yaml:"semver"`
	BuildDate string `json:"build_date" yaml:"build_date"`

	GitCommit string `json:"git_commit" yaml:"git_commit"`
	GitBranch string `json:"git_branch" yaml:"git_branch"`

	GoVersion string `json:"go_version" yaml:"go_version"`
	Compiler  string `json:"compiler" yaml:"compiler"`
	Platform  string `json:"platform" yaml:"platform"`

	// ConfigLibraries are the decoder modules compiled in, keyed by format
	ConfigLibraries map[string]Module `json:"config_libraries,omitempty" yaml:"config_libraries,omitempty"`

	BuildDeps []Module `json:"build_deps,omitempty" yaml:"build_deps,omitempty"`
}

// Module represents a Go module dependency
type Module struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// decoders maps configuration formats to the module decoding them.
var decoders = map[string]string{
	"yaml": "gopkg.in/yaml.v3",
	"toml": "github.com/pelletier/go-toml/v2",
}

// GetBuildInfo returns build information
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		SemVer:    strings.Split(strings.TrimPrefix(Version, "v"), "-")[0],
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		GoVersion: runtime.Version(),
		Compiler:  runtime.Compiler,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = setting.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = setting.Value
			}
		}
	}

	for _, dep := range buildInfo.Deps {
		m := Module{Path: dep.Path, Version: dep.Version}
		info.BuildDeps = append(info.BuildDeps, m)
		for format, path := range decoders {
			if dep.Path == path {
				if info.ConfigLibraries == nil {
					info.ConfigLibraries = make(map[string]Module)
				}
				info.ConfigLibraries[format] = m
			}
		}
	}

	return info
}

// Short returns the one line version string
func Short() string {
	return fmt.Sprintf("lintconf %s (%s, %s)", Version, shortCommit(GetBuildInfo().GitCommit), runtime.Version())
}

// FullVersion returns a formatted string with complete version information
func FullVersion() string {
	info := GetBuildInfo()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("lintconf %s\n", info.Version))
	b.WriteString("========================================\n\n")

	b.WriteString("Version Information:\n")
	b.WriteString(fmt.Sprintf("  Version:      %s\n", info.Version))
	b.WriteString(fmt.Sprintf("  Semantic Ver: %s\n", info.SemVer))
	b.WriteString(fmt.Sprintf("  Build Date:   %s\n", info.BuildDate))
	b.WriteString("\n")

	b.WriteString("Git Information:\n")
	b.WriteString(fmt.Sprintf("  Commit:       %s\n", info.GitCommit))
	b.WriteString(fmt.Sprintf("  Branch:       %s\n", info.GitBranch))
	b.WriteString("\n")

	b.WriteString("Go Build Information:\n")
	b.WriteString(fmt.Sprintf("  Go Version:   %s\n", info.GoVersion))
	b.WriteString(fmt.Sprintf("  Compiler:     %s\n", info.Compiler))
	b.WriteString(fmt.Sprintf("  Platform:     %s\n", info.Platform))
	b.WriteString("\n")

	b.WriteString("Configuration Formats:\n")
	b.WriteString("  json:         encoding/json\n")
	for _, format := range []string{"toml", "yaml"} {
		lib := Module{Path: decoders[format], Version: "unknown"}
		if m, ok := info.ConfigLibraries[format]; ok {
			lib = m
		}
		b.WriteString(fmt.Sprintf("  %-13s %s@%s\n", format+":", lib.Path, lib.Version))
	}

	return b.String()
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
