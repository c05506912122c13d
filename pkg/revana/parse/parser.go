package parse

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cognitext/revana/pkg/revana/textclean"
)

// Report summarizes one parse run. Per-record failures are recoverable:
// the block is skipped with a diagnostic and the parse continues.
type Report struct {
	Blocks      int
	Parsed      int
	Skipped     int
	Duplicates  int
	Diagnostics []Diagnostic
}

// Diagnostic records why a block was skipped.
type Diagnostic struct {
	Block  int // zero-based position in the raw source
	Reason string
}

// Parser converts raw pseudo-XML review dumps into Records, joining a
// tabular metadata source by reviewer identifier when one is present.
type Parser struct {
	meta *Metadata
}

// NewParser creates a parser. meta may be nil when there is no
// metadata source to join.
func NewParser(meta *Metadata) *Parser {
	return &Parser{meta: meta}
}

// Parse reads the whole raw source and returns one Record per
// successfully parsed block, in input order. A block without an
// extractable identifier (or with no metadata match) is skipped and
// reported; only a read failure aborts the parse.
func (p *Parser) Parse(r io.Reader) ([]Record, Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Report{}, fmt.Errorf("read raw source: %w", err)
	}

	var report Report
	blocks := recordPattern.FindAllStringSubmatch(string(data), -1)
	report.Blocks = len(blocks)

	records := make([]Record, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))

	for i, m := range blocks {
		rec, reason := p.parseBlock(m[1])
		if reason != "" {
			report.Skipped++
			report.Diagnostics = append(report.Diagnostics, Diagnostic{Block: i, Reason: reason})
			continue
		}

		standardize(&rec)
		if _, dup := seen[rec.Key()]; dup {
			report.Duplicates++
			continue
		}
		seen[rec.Key()] = struct{}{}

		records = append(records, rec)
		report.Parsed++
	}

	return records, report, nil
}

// parseBlock extracts one record from a block body. The returned
// reason is empty on success.
func (p *Parser) parseBlock(block string) (Record, string) {
	rec := Record{
		Category:        extract(categoryPattern, block),
		ReviewerID:      extract(reviewerIDPattern, block),
		ReviewTitle:     extract(titlePattern, block),
		ReviewText:      extract(textPattern, block),
		AttachedImages:  extract(imagesPattern, block),
		ProductID:       extract(productIDPattern, block),
		ParentProductID: extract(parentProductIDPattern, block),
	}
	rec.Rating = parseRating(extract(ratingPattern, block))
	rec.ReviewTimestamp = parseTimestamp(extract(timestampPattern, block))
	rec.VerifiedPurchase = strings.EqualFold(extract(verifiedPattern, block), "true")
	rec.HelpfulVotes = parseVotes(extract(votesPattern, block))

	if rec.ReviewerID == None {
		return rec, "no extractable reviewer id"
	}
	if p.meta != nil {
		row, ok := p.meta.Lookup(rec.ReviewerID)
		if !ok {
			return rec, fmt.Sprintf("reviewer %q not in metadata", rec.ReviewerID)
		}
		fillFromMetadata(&rec, row)
	}
	if err := rec.Validate(); err != nil {
		return rec, err.Error()
	}
	return rec, ""
}

// fillFromMetadata supplies fields the text block did not carry.
func fillFromMetadata(rec *Record, row MetadataRow) {
	if rec.Category == None {
		rec.Category = orNone(row.Category)
	}
	if rec.ReviewTitle == None {
		rec.ReviewTitle = orNone(row.ReviewTitle)
	}
	if rec.ReviewText == None {
		rec.ReviewText = orNone(row.ReviewText)
	}
	if rec.AttachedImages == None {
		rec.AttachedImages = orNone(row.AttachedImages)
	}
	if rec.ProductID == None {
		rec.ProductID = orNone(row.ProductID)
	}
	if rec.ParentProductID == None {
		rec.ParentProductID = orNone(row.ParentProductID)
	}
	if rec.Rating == 0 && row.Rating != "" {
		rec.Rating = parseRating(row.Rating)
	}
	if rec.ReviewTimestamp.IsZero() && row.ReviewTimestamp != "" {
		rec.ReviewTimestamp = parseTimestamp(row.ReviewTimestamp)
	}
	if rec.HelpfulVotes == 0 && row.HelpfulVotes != "" {
		rec.HelpfulVotes = parseVotes(row.HelpfulVotes)
	}
	if !rec.VerifiedPurchase {
		rec.VerifiedPurchase = strings.EqualFold(strings.TrimSpace(row.VerifiedPurchase), "true")
	}
}

// standardize applies the post-parse normalization pass: lowercase
// text fields, replace non-English review text with the placeholder.
func standardize(rec *Record) {
	rec.Category = strings.ToLower(rec.Category)
	rec.ReviewerID = strings.ToLower(rec.ReviewerID)
	rec.ReviewTitle = strings.ToLower(rec.ReviewTitle)
	rec.ReviewText = strings.ToLower(rec.ReviewText)
	rec.AttachedImages = strings.ToLower(rec.AttachedImages)
	rec.ProductID = strings.ToLower(rec.ProductID)
	rec.ParentProductID = strings.ToLower(rec.ParentProductID)

	if !textclean.IsASCII(rec.ReviewText) {
		rec.ReviewText = None
	}
}

func parseRating(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseVotes(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseTimestamp accepts Unix-millisecond values and the
// "YYYY-MM-DD HH:MM:SS" layout, both normalized to UTC. Anything else
// yields the zero time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == None {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
