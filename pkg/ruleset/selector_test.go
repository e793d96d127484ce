package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorSelects(t *testing.T) {
	tests := []struct {
		name  string
		only  string
		skip  string
		rule  string
		wants bool
	}{
		{name: "empty keeps everything", rule: "MagicNumber", wants: true},
		{name: "exact", only: "MagicNumber", rule: "MagicNumber", wants: true},
		{name: "exact needs the whole name", only: "Magic", rule: "MagicNumber", wants: false},
		{name: "prefix", only: "Magic*", rule: "MagicNumber", wants: true},
		{name: "prefix misses suffix", only: "Number*", rule: "MagicNumber", wants: false},
		{name: "fragment", only: "*Num*", rule: "MagicNumber", wants: true},
		{name: "leading wildcard only", only: "*Number", rule: "MagicNumber", wants: true},
		{name: "semicolons separate words", only: "LongMethod; Magic*", rule: "MagicNumber", wants: true},
		{name: "skip", skip: "MagicNumber", rule: "MagicNumber", wants: false},
		{name: "skip keeps others", skip: "MagicNumber", rule: "LongMethod", wants: true},
		{name: "skip with wildcard only", only: "*", skip: "MagicNumber", rule: "MagicNumber", wants: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, NewSelector(tt.only, tt.skip).Selects(tt.rule))
		})
	}
}

func TestSelectorEmpty(t *testing.T) {
	assert.True(t, NewSelector("", "").Empty())
	assert.True(t, NewSelector(" , ;", "").Empty())
	assert.False(t, NewSelector("Magic*", "").Empty())
	assert.False(t, NewSelector("", "MagicNumber").Empty())
}

func TestSelectorUnmatched(t *testing.T) {
	names := []string{"MagicNumber", "LongMethod", "WildcardImport"}

	tests := []struct {
		name string
		only string
		want []string
	}{
		{name: "all matched", only: "MagicNumber, Long*, *Import", want: nil},
		{name: "unknown exact name", only: "MagicNumber, MaxLineLength", want: []string{"MaxLineLength"}},
		{name: "words are reported as written", only: "Foo*, *Bar*, *Import", want: []string{"Foo*", "*Bar*"}},
		{name: "fragment needs a substring", only: "*Method", want: nil},
		{name: "empty", only: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSelector(tt.only, "").Unmatched(names))
		})
	}

	assert.Equal(t, []string{"*"}, NewSelector("*", "").Unmatched(nil))
}
