// Package pmi scores bigram collocations by pointwise mutual
// information and selects the most significant pairs for the
// vocabulary.
package pmi

import (
	"math"
	"sort"

	"github.com/cognitext/revana/pkg/revana/ingest"
)

// Calculator computes PMI over a Counter's frequencies.
type Calculator struct {
	counter *Counter
}

// NewCalculator creates a calculator over the given counts.
func NewCalculator(counter *Counter) *Calculator {
	return &Calculator{counter: counter}
}

// PMI calculates the pointwise mutual information of an adjacent pair:
//
//	PMI(a,b) = log2(N_ab * N / (N_a * N_b))
//
// where N_ab is the pair count, N_a and N_b the unigram counts and N
// the total token count. Unseen pairs score negative infinity.
func (c *Calculator) PMI(b ingest.Bigram) float64 {
	n := c.counter.TotalTokens()
	if n == 0 {
		return 0
	}
	nAB := c.counter.PairCount(b)
	nA := c.counter.TokenCount(b.First)
	nB := c.counter.TokenCount(b.Second)
	if nAB == 0 || nA == 0 || nB == 0 {
		return math.Inf(-1)
	}
	return math.Log2(float64(nAB) * float64(n) / (float64(nA) * float64(nB)))
}

// ScoredBigram pairs a bigram with its PMI score.
type ScoredBigram struct {
	Bigram ingest.Bigram
	Score  float64
}

// TopBigrams returns the k highest-PMI bigrams among pairs occurring
// at least minFreq times. Ties break lexically so the selection is
// deterministic across runs.
func (c *Calculator) TopBigrams(k int, minFreq int64) []ScoredBigram {
	if k <= 0 {
		return nil
	}
	if minFreq < 1 {
		minFreq = 1
	}

	pairs := c.counter.Pairs(minFreq)
	scored := make([]ScoredBigram, 0, len(pairs))
	for _, b := range pairs {
		scored = append(scored, ScoredBigram{Bigram: b, Score: c.PMI(b)})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Bigram.First != scored[j].Bigram.First {
			return scored[i].Bigram.First < scored[j].Bigram.First
		}
		return scored[i].Bigram.Second < scored[j].Bigram.Second
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
