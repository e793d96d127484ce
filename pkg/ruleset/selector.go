package ruleset

import (
	"strings"

	"github.com/sonemaro/lintconf/pkg/pattern"
)

type wordKind int

const (
	exactWord wordKind = iota
	prefixWord
	fragmentWord
)

type selectorWord struct {
	raw  string
	text string
	kind wordKind
}

func parseSelectorWord(raw string) selectorWord {
	w := selectorWord{raw: raw, text: strings.Trim(raw, "*")}
	switch {
	case strings.HasPrefix(raw, "*"):
		w.kind = fragmentWord
	case strings.HasSuffix(raw, "*"):
		w.kind = prefixWord
	}
	return w
}

// Selector picks rules by name. A word ending in '*' selects by prefix, a
// word starting with '*' by substring and any other word by exact name. A
// lone "*" selects every rule. Skipped names are removed from the selection.
type Selector struct {
	words    []selectorWord
	all      bool
	exact    pattern.SplitPattern
	prefix   pattern.SplitPattern
	fragment pattern.SplitPattern
	skip     pattern.SplitPattern
}

// NewSelector parses the comma or semicolon separated words of only and skip.
func NewSelector(only, skip string) Selector {
	s := Selector{
		words: pattern.MapAll(pattern.NewSplitPatternWith(only, pattern.Delimiters, false), parseSelectorWord),
		skip:  pattern.NewSplitPattern(skip),
	}

	byKind := map[wordKind][]string{}
	for _, w := range s.words {
		if w.text == "" {
			s.all = true
			continue
		}
		byKind[w.kind] = append(byKind[w.kind], w.text)
	}
	join := func(k wordKind) pattern.SplitPattern {
		return pattern.NewSplitPattern(strings.Join(byKind[k], ","))
	}
	s.exact, s.prefix, s.fragment = join(exactWord), join(prefixWord), join(fragmentWord)
	return s
}

// Empty reports whether the selector keeps every rule.
func (s Selector) Empty() bool {
	return len(s.words) == 0 && len(s.skip.Words()) == 0
}

// Selects reports whether the rule called name is kept.
func (s Selector) Selects(name string) bool {
	if len(s.words) == 0 || s.all {
		return s.skip.None(name)
	}
	return s.skip.None(name) &&
		(s.exact.Contains(name) || s.prefix.StartWith(name) || s.fragment.Any(name))
}

// Unmatched returns the words of only, as written, that select none of names.
func (s Selector) Unmatched(names []string) []string {
	type key struct {
		kind wordKind
		text string
	}
	hit := map[key]bool{}
	for _, name := range names {
		if s.exact.Contains(name) {
			hit[key{exactWord, name}] = true
		}
		for _, w := range s.fragment.Matches(name) {
			hit[key{fragmentWord, w}] = true
		}
		for _, w := range s.prefix.Words() {
			if strings.HasPrefix(name, w) {
				hit[key{prefixWord, w}] = true
			}
		}
	}

	var missing []string
	for _, w := range s.words {
		if w.text == "" {
			if len(names) == 0 {
				missing = append(missing, w.raw)
			}
			continue
		}
		if !hit[key{w.kind, w.text}] {
			missing = append(missing, w.raw)
		}
	}
	return missing
}
