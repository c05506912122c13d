// Package vector builds the corpus vocabulary and term-count
// aggregates from per-record token sequences.
package vector

import "sort"

// Accumulator folds per-record stemmed token sequences into a corpus
// vocabulary and count vector. It is an explicit value passed through
// the fold, not process-global state; a fresh accumulator plus the
// same records always reproduces the same result.
type Accumulator struct {
	counts map[string]int64
	total  int64
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{counts: make(map[string]int64)}
}

// Add folds one record's token sequence into the aggregate. Empty
// sequences contribute nothing.
func (a *Accumulator) Add(tokens []string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		a.counts[t]++
		a.total++
	}
}

// Count returns the corpus-wide occurrence count for a term.
func (a *Accumulator) Count(term string) int64 {
	return a.counts[term]
}

// Total returns the total number of tokens folded in. It always equals
// the sum of all per-term counts.
func (a *Accumulator) Total() int64 {
	return a.total
}

// Vocabulary returns the distinct terms (count >= 1) in sorted order.
func (a *Accumulator) Vocabulary() []string {
	terms := make([]string, 0, len(a.counts))
	for t := range a.counts {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// CountVector returns a copy of the term → count mapping.
func (a *Accumulator) CountVector() map[string]int64 {
	out := make(map[string]int64, len(a.counts))
	for t, n := range a.counts {
		out[t] = n
	}
	return out
}

// Vocab is an indexed vocabulary: terms in alphabetical order, each
// assigned its position as reference code.
type Vocab struct {
	terms []string
	index map[string]int
}

// NewVocab builds an indexed vocabulary from a term list. Input
// duplicates collapse; the stored order is alphabetical.
func NewVocab(terms []string) *Vocab {
	seen := make(map[string]struct{}, len(terms))
	uniq := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	sort.Strings(uniq)

	index := make(map[string]int, len(uniq))
	for i, t := range uniq {
		index[t] = i
	}
	return &Vocab{terms: uniq, index: index}
}

// Terms returns the vocabulary terms in index order.
func (v *Vocab) Terms() []string {
	return v.terms
}

// Index returns the reference code for a term.
func (v *Vocab) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Len returns the vocabulary size.
func (v *Vocab) Len() int {
	return len(v.terms)
}

// Entry is one index:count cell of a sparse vector.
type Entry struct {
	Index int
	Count int64
}

// Sparse counts the vocabulary terms present in a token sequence and
// returns index-sorted entries. Tokens outside the vocabulary are
// ignored.
func (v *Vocab) Sparse(tokens []string) []Entry {
	counts := make(map[int]int64)
	for _, t := range tokens {
		if i, ok := v.index[t]; ok {
			counts[i]++
		}
	}

	out := make([]Entry, 0, len(counts))
	for i, n := range counts {
		out = append(out, Entry{Index: i, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
