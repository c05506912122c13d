// Package analytics aggregates corpus-level review statistics: rating
// and vote distributions, monthly volume, per-product counts, and
// token document frequencies over product groups.
package analytics

import (
	"math"
	"sort"

	"github.com/cognitext/revana/pkg/revana/parse"
	"github.com/cognitext/revana/pkg/revana/stoplist"
)

// Analyzer accumulates statistics over parsed records and their
// preprocessed token streams. It is not safe for concurrent use.
type Analyzer struct {
	totalReviews  int64
	ratingSum     float64
	ratingCounts  map[int]int64
	verified      int64
	helpfulSum    int64
	monthly       map[string]int64 // "2006-01" -> review count
	perParent     map[string]int64
	textPerParent map[string]int64 // reviews with usable text

	groups  map[string]struct{}            // parent products seen with tokens
	tokenDF map[string]map[string]struct{} // token -> parent products containing it
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		ratingCounts:  make(map[int]int64),
		monthly:       make(map[string]int64),
		perParent:     make(map[string]int64),
		textPerParent: make(map[string]int64),
		groups:        make(map[string]struct{}),
		tokenDF:       make(map[string]map[string]struct{}),
	}
}

// ProcessRecord consumes one parsed review.
func (a *Analyzer) ProcessRecord(rec parse.Record) {
	a.totalReviews++
	a.ratingSum += rec.Rating

	bucket := int(math.Round(rec.Rating))
	if bucket < 0 {
		bucket = 0
	}
	if bucket > 5 {
		bucket = 5
	}
	a.ratingCounts[bucket]++

	if rec.VerifiedPurchase {
		a.verified++
	}
	a.helpfulSum += rec.HelpfulVotes

	if !rec.ReviewTimestamp.IsZero() {
		a.monthly[rec.ReviewTimestamp.UTC().Format("2006-01")]++
	}

	if rec.ParentProductID != "" && rec.ParentProductID != parse.None {
		a.perParent[rec.ParentProductID]++
		if rec.ReviewText != "" && rec.ReviewText != parse.None {
			a.textPerParent[rec.ParentProductID]++
		}
	}
}

// ProcessTokens consumes the deduplicated presence of tokens in one
// product group's reviews. Repeated tokens within the group count
// once.
func (a *Analyzer) ProcessTokens(parentProductID string, tokens []string) {
	if parentProductID == "" || parentProductID == parse.None {
		return
	}
	a.groups[parentProductID] = struct{}{}

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		set := a.tokenDF[tok]
		if set == nil {
			set = make(map[string]struct{})
			a.tokenDF[tok] = set
		}
		set[parentProductID] = struct{}{}
	}
}

// Stats is a point-in-time view of the accumulated counts.
type Stats struct {
	TotalReviews         int64
	AverageRating        float64
	RatingCounts         map[int]int64 // rating rounded to 0..5
	VerifiedShare        float64
	AverageHelpfulVotes  float64
	Monthly              map[string]int64
	ReviewsPerParent     map[string]int64
	TextReviewsPerParent map[string]int64
	TotalGroups          int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	st := Stats{
		TotalReviews:         a.totalReviews,
		RatingCounts:         copyCounts(a.ratingCounts),
		Monthly:              copyCounts(a.monthly),
		ReviewsPerParent:     copyCounts(a.perParent),
		TextReviewsPerParent: copyCounts(a.textPerParent),
		TotalGroups:          int64(len(a.groups)),
	}
	if a.totalReviews > 0 {
		st.AverageRating = a.ratingSum / float64(a.totalReviews)
		st.VerifiedShare = float64(a.verified) / float64(a.totalReviews)
		st.AverageHelpfulVotes = float64(a.helpfulSum) / float64(a.totalReviews)
	}
	return st
}

// TokenGroupDF returns, per token, the number of product groups whose
// reviews contain it.
func (a *Analyzer) TokenGroupDF() map[string]int64 {
	out := make(map[string]int64, len(a.tokenDF))
	for tok, set := range a.tokenDF {
		out[tok] = int64(len(set))
	}
	return out
}

// TermStats converts the group document frequencies into the form the
// stoplist thresholds consume, sorted by term.
func (a *Analyzer) TermStats() []stoplist.TermStats {
	total := len(a.groups)
	out := make([]stoplist.TermStats, 0, len(a.tokenDF))
	for tok, set := range a.tokenDF {
		ts := stoplist.TermStats{
			Term:       tok,
			GroupCount: int64(len(set)),
		}
		if total > 0 {
			ts.GroupFrac = float64(len(set)) / float64(total)
		}
		out = append(out, ts)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

func copyCounts[K comparable](m map[K]int64) map[K]int64 {
	out := make(map[K]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
