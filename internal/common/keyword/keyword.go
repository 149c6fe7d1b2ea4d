// Package keyword implements the case-insensitive whole-word matching used to read
// free-text replies such as "yes", "semi-pro" or "next step".
package keyword

import (
	"regexp"
	"strings"
	"unicode"
)

var nonWord = regexp.MustCompile(`[^a-z0-9\s]+`)

// Normalize lowercases text, drops every character that is not a letter, digit or
// whitespace and collapses runs of whitespace to a single space. Unicode spaces such
// as NBSP count as whitespace.
func Normalize(text string) string {
	spaced := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, strings.ToLower(text))
	cleaned := nonWord.ReplaceAllString(spaced, "")
	return strings.Join(strings.Fields(cleaned), " ")
}

// Set is a precompiled group of keywords or phrases.
type Set struct {
	words    []string
	patterns []*regexp.Regexp
}

// NewSet compiles the keywords. Keywords are normalized the same way as the text they
// are matched against, so "semi-pro" matches "Semi-Pro" and "semipro".
func NewSet(words ...string) *Set {
	s := &Set{}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		n := Normalize(w)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		s.words = append(s.words, n)
		s.patterns = append(s.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(n)+`\b`))
	}
	return s
}

// Match reports whether any keyword occurs in text as a whole word or phrase.
func (s *Set) Match(text string) bool {
	_, ok := s.First(text)
	return ok
}

// First returns the first keyword, in declaration order, found in text.
func (s *Set) First(text string) (string, bool) {
	if s == nil {
		return "", false
	}
	normalized := Normalize(text)
	if normalized == "" {
		return "", false
	}
	for i, p := range s.patterns {
		if p.MatchString(normalized) {
			return s.words[i], true
		}
	}
	return "", false
}

// Words returns the normalized keywords.
func (s *Set) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// ContainsAny is a one-off form of NewSet(keywords...).Match(text).
func ContainsAny(text string, keywords ...string) bool {
	return NewSet(keywords...).Match(text)
}
