package pmi

import "github.com/cognitext/revana/pkg/revana/ingest"

// Counter accumulates unigram and adjacent-pair frequencies across
// token sequences, one sequence per record.
type Counter struct {
	total int64            // total tokens observed
	nx    map[string]int64 // occurrence count per token
	nxy   map[ingest.Bigram]int64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		nx:  make(map[string]int64),
		nxy: make(map[ingest.Bigram]int64),
	}
}

// AddSequence updates counts for one record's stemmed token sequence.
// Pairs never cross record boundaries.
func (c *Counter) AddSequence(tokens []string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		c.total++
		c.nx[t]++
	}
	for _, b := range ingest.Bigrams(tokens) {
		if b.First == "" || b.Second == "" {
			continue
		}
		c.nxy[b]++
	}
}

// TokenCount returns the occurrence count for a token.
func (c *Counter) TokenCount(t string) int64 {
	return c.nx[t]
}

// PairCount returns the occurrence count for an ordered bigram.
func (c *Counter) PairCount(b ingest.Bigram) int64 {
	return c.nxy[b]
}

// TotalTokens returns the total number of tokens observed.
func (c *Counter) TotalTokens() int64 {
	return c.total
}

// UniqueTokens returns the number of distinct tokens.
func (c *Counter) UniqueTokens() int {
	return len(c.nx)
}

// UniquePairs returns the number of distinct bigrams.
func (c *Counter) UniquePairs() int {
	return len(c.nxy)
}

// Pairs returns every observed bigram with count >= minFreq.
func (c *Counter) Pairs(minFreq int64) []ingest.Bigram {
	var out []ingest.Bigram
	for b, n := range c.nxy {
		if n >= minFreq {
			out = append(out, b)
		}
	}
	return out
}
