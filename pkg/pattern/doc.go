// Package pattern holds the small text helpers shared by configuration-driven
// filters: delimiter-separated list splitting, wildcard word lists and a
// minimal glob-to-regexp translator.
package pattern
