package skills

import (
	"sort"
	"strings"
)

// Set is an unordered set of skill terms.
type Set map[string]struct{}

// NewSet returns a set holding terms.
func NewSet(terms ...string) Set {
	s := make(Set, len(terms))
	s.AddAll(terms)
	return s
}

// Add inserts a term.
func (s Set) Add(term string) {
	s[term] = struct{}{}
}

// AddAll inserts every term.
func (s Set) AddAll(terms []string) {
	for _, term := range terms {
		s[term] = struct{}{}
	}
}

// Has reports whether term is in the set.
func (s Set) Has(term string) bool {
	_, ok := s[term]
	return ok
}

// Len returns the number of terms.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the terms in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for term := range s {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Lower returns a copy of the set with every term lowercased.
func (s Set) Lower() Set {
	out := make(Set, len(s))
	for term := range s {
		out.Add(strings.ToLower(term))
	}
	return out
}

// Join returns the sorted terms joined with sep.
func (s Set) Join(sep string) string {
	return strings.Join(s.Sorted(), sep)
}
