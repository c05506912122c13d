// Package export renders pipeline outputs: the indexed vocabulary,
// sparse count vectors per product group, review-count summaries, and
// the grouped JSON dump of parsed records.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/cognitext/revana/pkg/revana/parse"
	"github.com/cognitext/revana/pkg/revana/vector"
)

// WriteVocab writes the vocabulary as one "term:index" line per term,
// in index (alphabetical) order.
func WriteVocab(w io.Writer, vocab *vector.Vocab) error {
	bw := bufio.NewWriter(w)
	for i, term := range vocab.Terms() {
		if _, err := fmt.Fprintf(bw, "%s:%d\n", term, i); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCountVectors writes one line per product group:
// the group ID followed by comma-separated "index:count" entries in
// index order. Groups are written in sorted order.
func WriteCountVectors(w io.Writer, groups map[string][]vector.Entry) error {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := bw.WriteString(id); err != nil {
			return err
		}
		for _, e := range groups[id] {
			if _, err := fmt.Fprintf(bw, ",%d:%d", e.Index, e.Count); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteReviewCounts writes the per-product summary CSV: total reviews
// and reviews carrying usable text, per parent product, sorted by ID.
func WriteReviewCounts(w io.Writer, reviews, textReviews map[string]int64) error {
	ids := make([]string, 0, len(reviews))
	for id := range reviews {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"parent_product_id", "review_count", "review_text_count"}); err != nil {
		return err
	}
	for _, id := range ids {
		row := []string{
			id,
			strconv.FormatInt(reviews[id], 10),
			strconv.FormatInt(textReviews[id], 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// reviewJSON is the exported shape of one record. Every field is a
// string so absent values keep their placeholder form.
type reviewJSON struct {
	Category         string `json:"category"`
	ReviewerID       string `json:"reviewer_id"`
	Rating           string `json:"rating"`
	ReviewTitle      string `json:"review_title"`
	ReviewText       string `json:"review_text"`
	AttachedImages   string `json:"attached_images"`
	ProductID        string `json:"product_id"`
	ParentProductID  string `json:"parent_product_id"`
	ReviewTimestamp  string `json:"review_timestamp"`
	VerifiedPurchase string `json:"is_verified_purchase"`
	HelpfulVotes     string `json:"helpful_votes"`
}

// WriteGroupedJSON writes all records as a JSON object keyed by parent
// product ID, each value the group's reviews in input order.
func WriteGroupedJSON(w io.Writer, records []parse.Record) error {
	grouped := make(map[string][]reviewJSON)
	for _, rec := range records {
		grouped[rec.ParentProductID] = append(grouped[rec.ParentProductID], toJSON(rec))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(grouped)
}

func toJSON(rec parse.Record) reviewJSON {
	return reviewJSON{
		Category:         rec.Category,
		ReviewerID:       rec.ReviewerID,
		Rating:           strconv.FormatFloat(rec.Rating, 'f', -1, 64),
		ReviewTitle:      rec.ReviewTitle,
		ReviewText:       rec.ReviewText,
		AttachedImages:   rec.AttachedImages,
		ProductID:        rec.ProductID,
		ParentProductID:  rec.ParentProductID,
		ReviewTimestamp:  rec.TimestampString(),
		VerifiedPurchase: strconv.FormatBool(rec.VerifiedPurchase),
		HelpfulVotes:     strconv.FormatInt(rec.HelpfulVotes, 10),
	}
}
