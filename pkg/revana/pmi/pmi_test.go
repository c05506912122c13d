package pmi

import (
	"math"
	"testing"

	"github.com/cognitext/revana/pkg/revana/ingest"
)

func TestCounterBasic(t *testing.T) {
	c := NewCounter()
	c.AddSequence([]string{"great", "vacuum", "clean"})
	c.AddSequence([]string{"great", "vacuum"})

	if got := c.TotalTokens(); got != 5 {
		t.Errorf("TotalTokens() = %d, want 5", got)
	}
	if got := c.TokenCount("great"); got != 2 {
		t.Errorf("TokenCount(great) = %d, want 2", got)
	}
	if got := c.PairCount(ingest.Bigram{First: "great", Second: "vacuum"}); got != 2 {
		t.Errorf("PairCount(great,vacuum) = %d, want 2", got)
	}
	if got := c.PairCount(ingest.Bigram{First: "vacuum", Second: "great"}); got != 0 {
		t.Errorf("reversed pair should not be counted, got %d", got)
	}
	if got := c.UniqueTokens(); got != 3 {
		t.Errorf("UniqueTokens() = %d, want 3", got)
	}
	if got := c.UniquePairs(); got != 2 {
		t.Errorf("UniquePairs() = %d, want 2", got)
	}
}

func TestCounterNoCrossRecordPairs(t *testing.T) {
	c := NewCounter()
	c.AddSequence([]string{"alpha"})
	c.AddSequence([]string{"beta"})

	if got := c.UniquePairs(); got != 0 {
		t.Errorf("single-token sequences should produce no pairs, got %d", got)
	}
}

func TestPMIValue(t *testing.T) {
	c := NewCounter()
	// 4 tokens total; "tea pot" appears once, each token once.
	c.AddSequence([]string{"tea", "pot"})
	c.AddSequence([]string{"red", "car"})

	calc := NewCalculator(c)
	got := calc.PMI(ingest.Bigram{First: "tea", Second: "pot"})
	// log2(1 * 4 / (1 * 1)) = 2
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("PMI = %v, want 2.0", got)
	}
}

func TestPMIUnseenPair(t *testing.T) {
	c := NewCounter()
	c.AddSequence([]string{"tea", "pot"})

	calc := NewCalculator(c)
	got := calc.PMI(ingest.Bigram{First: "pot", Second: "tea"})
	if !math.IsInf(got, -1) {
		t.Errorf("PMI of unseen pair = %v, want -Inf", got)
	}
}

func TestPMIEmptyCorpus(t *testing.T) {
	calc := NewCalculator(NewCounter())
	if got := calc.PMI(ingest.Bigram{First: "a", Second: "b"}); got != 0 {
		t.Errorf("PMI on empty corpus = %v, want 0", got)
	}
}

func TestTopBigramsFreqFilter(t *testing.T) {
	c := NewCounter()
	// "steam mop" twice, "good deal" once
	c.AddSequence([]string{"steam", "mop"})
	c.AddSequence([]string{"steam", "mop"})
	c.AddSequence([]string{"good", "deal"})

	calc := NewCalculator(c)
	top := calc.TopBigrams(10, 2)
	if len(top) != 1 {
		t.Fatalf("got %d bigrams, want 1 (freq filter)", len(top))
	}
	if top[0].Bigram != (ingest.Bigram{First: "steam", Second: "mop"}) {
		t.Errorf("top bigram = %v", top[0].Bigram)
	}
}

func TestTopBigramsRanking(t *testing.T) {
	c := NewCounter()
	// "steam mop" always together (high PMI); "the product" with "the"
	// spread everywhere (low PMI).
	c.AddSequence([]string{"steam", "mop", "the", "product"})
	c.AddSequence([]string{"steam", "mop", "the", "shipping"})
	c.AddSequence([]string{"the", "product", "the", "shipping"})

	calc := NewCalculator(c)
	top := calc.TopBigrams(2, 2)
	if len(top) != 2 {
		t.Fatalf("got %d bigrams, want 2", len(top))
	}
	if top[0].Bigram != (ingest.Bigram{First: "steam", Second: "mop"}) {
		t.Errorf("highest-PMI bigram = %v, want steam/mop", top[0].Bigram)
	}
	if top[0].Score <= top[1].Score {
		t.Errorf("scores not descending: %v then %v", top[0].Score, top[1].Score)
	}
}

func TestTopBigramsDeterministicTies(t *testing.T) {
	build := func() *Calculator {
		c := NewCounter()
		c.AddSequence([]string{"aa", "bb"})
		c.AddSequence([]string{"cc", "dd"})
		c.AddSequence([]string{"ee", "ff"})
		return NewCalculator(c)
	}

	first := build().TopBigrams(3, 1)
	for i := 0; i < 3; i++ {
		got := build().TopBigrams(3, 1)
		for j := range first {
			if got[j] != first[j] {
				t.Fatalf("tie order not deterministic: %v vs %v", got, first)
			}
		}
	}
}

func TestTopBigramsZeroK(t *testing.T) {
	calc := NewCalculator(NewCounter())
	if got := calc.TopBigrams(0, 1); got != nil {
		t.Errorf("TopBigrams(0) = %v, want nil", got)
	}
}
