// Package stoplist manages the stopword sets used during preprocessing.
//
// Two kinds of stopwords exist: the fixed language stoplist loaded once
// at startup, and corpus-dependent stopwords detected from document
// frequency across product groups.
package stoplist

import (
	"sort"
	"strings"
)

// Manager holds a fixed stopword set with case-normalized exact lookup.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager from an initial word list.
func NewManager(initial []string) *Manager {
	stops := make(map[string]struct{}, len(initial))
	for _, s := range initial {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			stops[s] = struct{}{}
		}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stopword.
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// Add adds a token to the stoplist.
func (m *Manager) Add(token string) {
	m.stops[strings.ToLower(token)] = struct{}{}
}

// Remove removes a token from the stoplist.
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Filter drops stopwords from a token sequence. The order of surviving
// tokens is preserved and the result is never longer than the input.
func (m *Manager) Filter(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !m.IsStop(t) {
			out = append(out, t)
		}
	}
	return out
}

// TermStats holds per-term document frequency over product groups.
type TermStats struct {
	Term       string
	GroupCount int64   // number of groups the term appears in
	GroupFrac  float64 // GroupCount / total groups
}

// Thresholds defines the document-frequency band for corpus-dependent
// stopword detection. Terms above MaxGroupFrac are context-dependent
// stopwords; terms below MinGroupFrac are too rare to be informative.
type Thresholds struct {
	MinGroupFrac float64
	MaxGroupFrac float64
}

// DefaultThresholds keeps terms appearing in [5%, 95%) of groups.
func DefaultThresholds() Thresholds {
	return Thresholds{MinGroupFrac: 0.05, MaxGroupFrac: 0.95}
}

// Candidate is a term flagged for exclusion with its reason.
type Candidate struct {
	Term      string
	GroupFrac float64
	HighDF    bool // appears in too many groups
	Rare      bool // appears in too few groups
}

// SuggestCandidates flags terms outside the DF band.
func SuggestCandidates(stats []TermStats, th Thresholds) []Candidate {
	var out []Candidate
	for _, s := range stats {
		switch {
		case s.GroupFrac >= th.MaxGroupFrac:
			out = append(out, Candidate{Term: s.Term, GroupFrac: s.GroupFrac, HighDF: true})
		case s.GroupFrac < th.MinGroupFrac:
			out = append(out, Candidate{Term: s.Term, GroupFrac: s.GroupFrac, Rare: true})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// Keep returns the terms inside the DF band, sorted.
func Keep(stats []TermStats, th Thresholds) []string {
	var out []string
	for _, s := range stats {
		if s.GroupFrac >= th.MinGroupFrac && s.GroupFrac < th.MaxGroupFrac {
			out = append(out, s.Term)
		}
	}
	sort.Strings(out)
	return out
}
