// Package revana is the review-corpus NLP engine facade. It wires the
// parser, preprocessing pipeline, collocation scorer, aggregators and
// store into the two pipeline stages: parse and preprocess.
package revana

import (
	"context"
	"io"
	"time"

	"github.com/cognitext/revana/pkg/revana/analytics"
	"github.com/cognitext/revana/pkg/revana/config"
	"github.com/cognitext/revana/pkg/revana/ingest"
	"github.com/cognitext/revana/pkg/revana/parse"
	"github.com/cognitext/revana/pkg/revana/pmi"
	"github.com/cognitext/revana/pkg/revana/stoplist"
	"github.com/cognitext/revana/pkg/revana/store"
	"github.com/cognitext/revana/pkg/revana/textclean"
	"github.com/cognitext/revana/pkg/revana/vector"
)

// Revana is the pipeline engine.
type Revana struct {
	store    store.Store
	pipeline *ingest.Pipeline
	cfg      config.Config
}

// Options configures a Revana instance.
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	Config   config.Config
}

// New creates an engine with the given dependencies. A nil pipeline
// gets the configured defaults with an empty stoplist.
func New(opts Options) *Revana {
	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = BuildPipeline(opts.Config, stoplist.NewManager(nil))
	}
	return &Revana{
		store:    opts.Store,
		pipeline: pipeline,
		cfg:      opts.Config,
	}
}

// BuildPipeline assembles a preprocessing pipeline from config.
func BuildPipeline(cfg config.Config, stops *stoplist.Manager) *ingest.Pipeline {
	policy := textclean.Policy{
		StripHTML:  cfg.Clean.StripHTML,
		StripEmoji: cfg.Clean.StripEmoji,
		ASCIIOnly:  cfg.Clean.ASCIIOnly,
		Lowercase:  cfg.Clean.Lowercase,
		NFKC:       cfg.Clean.Normalize,
	}
	cleaner := textclean.New(policy)
	tokenizer := ingest.NewTokenizer(cfg.Tokens.MinLength)
	return ingest.NewPipeline(cleaner, tokenizer, stops)
}

// Close shuts the engine down.
func (r *Revana) Close() error {
	return r.store.Close()
}

// ParseResult is the outcome of a parse stage.
type ParseResult struct {
	RunID   string
	Records []parse.Record
	Report  parse.Report
}

// ParseSource parses a raw review dump, joining metadata when present,
// and persists the surviving records plus a run manifest.
func (r *Revana) ParseSource(ctx context.Context, raw io.Reader, meta *parse.Metadata) (ParseResult, error) {
	runID := store.NewRunID()
	started := time.Now().UTC()

	records, report, err := parse.NewParser(meta).Parse(raw)
	if err != nil {
		return ParseResult{}, err
	}

	for _, rec := range records {
		if err := r.store.UpsertRecord(ctx, rec); err != nil {
			return ParseResult{}, err
		}
	}

	run := store.Run{
		ID:         runID,
		Stage:      "parse",
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Records:    int64(report.Parsed),
		Skipped:    int64(report.Skipped),
	}
	if err := r.store.PutRun(ctx, run); err != nil {
		return ParseResult{}, err
	}

	return ParseResult{RunID: runID, Records: records, Report: report}, nil
}

// PreprocessResult is the outcome of a preprocess stage over the
// stored corpus.
type PreprocessResult struct {
	RunID        string
	Vocab        *vector.Vocab
	CountVector  map[string]int64
	TotalTokens  int64
	GroupVectors map[string][]vector.Entry
	TopBigrams   []pmi.ScoredBigram
	Stats        analytics.Stats
}

// Preprocess runs the full NLP chain over every stored record:
// clean → tokenize → stopword-filter → stem, then the corpus passes:
// document-frequency band filtering over product groups, PMI bigram
// selection, vocabulary indexing and per-group count vectors. Token
// document frequencies and a run manifest are persisted.
func (r *Revana) Preprocess(ctx context.Context) (PreprocessResult, error) {
	runID := store.NewRunID()
	started := time.Now().UTC()

	records, err := r.store.ListRecords(ctx)
	if err != nil {
		return PreprocessResult{}, err
	}

	analyzer := analytics.NewAnalyzer()
	counter := pmi.NewCounter()
	groupSeqs := make(map[string][][]string) // one stemmed sequence per record

	for _, rec := range records {
		analyzer.ProcessRecord(rec)

		if rec.ReviewText == parse.None {
			continue
		}
		processed := r.pipeline.Process(rec.ReviewText)
		if len(processed.Stemmed) == 0 {
			continue
		}

		counter.AddSequence(processed.Stemmed)
		analyzer.ProcessTokens(rec.ParentProductID, processed.Stemmed)
		if rec.ParentProductID != "" && rec.ParentProductID != parse.None {
			groupSeqs[rec.ParentProductID] = append(groupSeqs[rec.ParentProductID], processed.Stemmed)
		}
	}

	// Second pass: keep only terms inside the document-frequency band.
	th := stoplist.Thresholds{
		MinGroupFrac: r.cfg.Stoplist.MinGroupFrac,
		MaxGroupFrac: r.cfg.Stoplist.MaxGroupFrac,
	}
	keep := make(map[string]struct{})
	for _, t := range stoplist.Keep(analyzer.TermStats(), th) {
		keep[t] = struct{}{}
	}

	top := pmi.NewCalculator(counter).TopBigrams(r.cfg.Bigrams.TopK, int64(r.cfg.Bigrams.MinFreq))
	selected := make(map[ingest.Bigram]struct{}, len(top))
	terms := make([]string, 0, len(top))
	for _, sb := range top {
		selected[sb.Bigram] = struct{}{}
		terms = append(terms, sb.Bigram.Joined())
	}

	acc := vector.NewAccumulator()
	groupFeatures := make(map[string][]string, len(groupSeqs))
	for id, seqs := range groupSeqs {
		var features []string
		for _, tokens := range seqs {
			for _, t := range tokens {
				if _, ok := keep[t]; ok {
					features = append(features, t)
				}
			}
			for _, b := range ingest.Bigrams(tokens) {
				if _, ok := selected[b]; ok {
					features = append(features, b.Joined())
				}
			}
		}
		groupFeatures[id] = features
		acc.Add(features)
	}
	terms = append(terms, acc.Vocabulary()...)
	vocab := vector.NewVocab(terms)

	groupVectors := make(map[string][]vector.Entry, len(groupFeatures))
	for id, features := range groupFeatures {
		groupVectors[id] = vocab.Sparse(features)
	}

	for tok, df := range analyzer.TokenGroupDF() {
		if err := r.store.UpsertTokenDF(ctx, tok, df); err != nil {
			return PreprocessResult{}, err
		}
	}

	run := store.Run{
		ID:         runID,
		Stage:      "preprocess",
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Records:    int64(len(records)),
		Tokens:     counter.TotalTokens(),
		VocabSize:  int64(vocab.Len()),
	}
	if err := r.store.PutRun(ctx, run); err != nil {
		return PreprocessResult{}, err
	}

	return PreprocessResult{
		RunID:        runID,
		Vocab:        vocab,
		CountVector:  acc.CountVector(),
		TotalTokens:  acc.Total(),
		GroupVectors: groupVectors,
		TopBigrams:   top,
		Stats:        analyzer.Snapshot(),
	}, nil
}

// Stats aggregates record-level statistics over the stored corpus
// without running the NLP chain.
func (r *Revana) Stats(ctx context.Context) (analytics.Stats, error) {
	records, err := r.store.ListRecords(ctx)
	if err != nil {
		return analytics.Stats{}, err
	}

	analyzer := analytics.NewAnalyzer()
	for _, rec := range records {
		analyzer.ProcessRecord(rec)
	}
	return analyzer.Snapshot(), nil
}
