package ingest

import "strings"

// Stopwords is a configurable exclusion set applied after tokenization.
// Entries are normalized the same way as corpus tokens (lowercased); a list
// containing duplicates collapses into a single entry by construction.
type Stopwords struct {
	stops map[string]struct{}
}

// NewStopwords builds an exclusion set from the given terms.
func NewStopwords(terms []string) *Stopwords {
	stops := make(map[string]struct{}, len(terms))
	for _, w := range terms {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		stops[w] = struct{}{}
	}
	return &Stopwords{stops: stops}
}

// IsStop reports whether a token is excluded.
func (s *Stopwords) IsStop(token string) bool {
	_, ok := s.stops[token]
	return ok
}

// Filter removes excluded tokens, preserving order.
func (s *Stopwords) Filter(tokens []string) []string {
	if len(s.stops) == 0 {
		return tokens
	}
	out := tokens[:0:0]
	for _, tok := range tokens {
		if s.IsStop(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Add adds a term to the exclusion set.
func (s *Stopwords) Add(term string) {
	s.stops[strings.ToLower(term)] = struct{}{}
}

// Remove removes a term from the exclusion set.
func (s *Stopwords) Remove(term string) {
	delete(s.stops, strings.ToLower(term))
}

// Len returns the number of distinct excluded terms.
func (s *Stopwords) Len() int {
	return len(s.stops)
}
