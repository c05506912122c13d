// Package ingest turns cleaned review text into NLP-ready token
// sequences: tokenize, stopword-filter, stem, bigram.
package ingest

import (
	"github.com/cognitext/revana/pkg/revana/stem"
	"github.com/cognitext/revana/pkg/revana/stoplist"
	"github.com/cognitext/revana/pkg/revana/textclean"
)

// Pipeline orchestrates the full preprocessing flow:
// raw text → clean → tokenize → stopword filter → stem → bigrams
type Pipeline struct {
	cleaner   *textclean.Cleaner
	tokenizer *Tokenizer
	stops     *stoplist.Manager
}

// NewPipeline creates a preprocessing pipeline with the given components.
func NewPipeline(cleaner *textclean.Cleaner, tokenizer *Tokenizer, stops *stoplist.Manager) *Pipeline {
	return &Pipeline{
		cleaner:   cleaner,
		tokenizer: tokenizer,
		stops:     stops,
	}
}

// Processed holds every derivation of one record's text. Each sequence
// is an independent ordered view; Cleaned is the normalized text the
// token sequences were derived from.
type Processed struct {
	Cleaned  string
	Tokens   []string // after tokenization
	Filtered []string // after stopword removal
	Stemmed  []string // after stemming, same length as Filtered
	Bigrams  []Bigram // adjacent pairs over Stemmed
}

// Process runs a record's raw text through the full chain. Degenerate
// input (empty or placeholder text) yields empty sequences, not an
// error; the record then contributes nothing to corpus aggregates.
func (p *Pipeline) Process(rawText string) Processed {
	cleaned := p.cleaner.Clean(rawText)

	tokens := p.tokenizer.Tokenize(cleaned)
	filtered := p.stops.Filter(tokens)
	stemmed := stem.All(filtered)

	return Processed{
		Cleaned:  cleaned,
		Tokens:   tokens,
		Filtered: filtered,
		Stemmed:  stemmed,
		Bigrams:  Bigrams(stemmed),
	}
}
