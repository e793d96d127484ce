package pattern

import (
	"regexp"
	"strings"
)

// GlobToRegexp translates a simple glob into an anchored regular expression.
// '*' matches any run of characters (including none) and '?' matches exactly
// one character. Every other character is matched literally.
func GlobToRegexp(glob string) (*regexp.Regexp, error) {
	return regexp.Compile(GlobToRegexpString(glob))
}

// GlobToRegexpString returns the regular expression source for glob.
func GlobToRegexpString(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// Glob is a compiled glob pattern.
type Glob struct {
	source string
	re     *regexp.Regexp
}

// CompileGlob compiles a glob pattern.
func CompileGlob(glob string) (*Glob, error) {
	re, err := GlobToRegexp(glob)
	if err != nil {
		return nil, err
	}
	return &Glob{source: glob, re: re}, nil
}

// Match reports whether s matches the whole glob.
func (g *Glob) Match(s string) bool {
	return g.re.MatchString(s)
}

// String returns the original glob.
func (g *Glob) String() string {
	return g.source
}
