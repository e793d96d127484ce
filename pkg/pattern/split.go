package pattern

import "strings"

// Delimiters are the characters list values may be separated by.
const Delimiters = ",;"

// SplitList splits s on commas and semicolons, trims every segment and drops
// empty ones. Order is preserved and duplicates are kept.
func SplitList(s string) []string {
	return SplitListWith(s, Delimiters)
}

// SplitListWith is SplitList with a custom delimiter set.
func SplitListWith(s, delimiters string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})

	result := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// TrimList trims every element of list and drops the empty ones.
func TrimList(list []string) []string {
	result := make([]string, 0, len(list))
	for _, s := range list {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// SplitPattern is a list of words parsed from a delimiter-separated string.
// Leading and trailing '*' wildcards are stripped from every word, so "*Test*"
// is treated as the word "Test" by the substring based checks.
type SplitPattern struct {
	words []string
}

// NewSplitPattern parses text into a SplitPattern.
func NewSplitPattern(text string) SplitPattern {
	return NewSplitPatternWith(text, Delimiters, true)
}

// NewSplitPatternWith parses text with custom delimiters. When trimAsterisks is
// false the words are kept verbatim.
func NewSplitPatternWith(text, delimiters string, trimAsterisks bool) SplitPattern {
	words := SplitListWith(text, delimiters)
	if trimAsterisks {
		kept := words[:0]
		for _, w := range words {
			w = strings.TrimSuffix(strings.TrimPrefix(w, "*"), "*")
			if w != "" {
				kept = append(kept, w)
			}
		}
		words = kept
	}
	return SplitPattern{words: words}
}

// Contains reports whether value equals one of the words.
func (p SplitPattern) Contains(value string) bool {
	for _, w := range p.words {
		if w == value {
			return true
		}
	}
	return false
}

// None is the negation of Contains.
func (p SplitPattern) None(value string) bool {
	return !p.Contains(value)
}

// Any reports whether value contains one of the words.
func (p SplitPattern) Any(value string) bool {
	for _, w := range p.words {
		if strings.Contains(value, w) {
			return true
		}
	}
	return false
}

// Matches returns the words contained in value.
func (p SplitPattern) Matches(value string) []string {
	var matched []string
	for _, w := range p.words {
		if strings.Contains(value, w) {
			matched = append(matched, w)
		}
	}
	return matched
}

// StartWith reports whether value starts with one of the words.
func (p SplitPattern) StartWith(value string) bool {
	for _, w := range p.words {
		if strings.HasPrefix(value, w) {
			return true
		}
	}
	return false
}

// Words returns a copy of the parsed words.
func (p SplitPattern) Words() []string {
	return append([]string(nil), p.words...)
}

// MapAll applies fn to every word.
func MapAll[T any](p SplitPattern, fn func(string) T) []T {
	result := make([]T, 0, len(p.words))
	for _, w := range p.words {
		result = append(result, fn(w))
	}
	return result
}
