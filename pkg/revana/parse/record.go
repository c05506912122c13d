// Package parse extracts structured review records from raw
// pseudo-XML review dumps and a tabular metadata source.
package parse

import (
	"fmt"
	"strings"
	"time"

	"github.com/cognitext/revana/pkg/revana/internalerr"
)

// None is the placeholder for absent or invalid field values.
const None = "none"

// Record is one parsed product review. Records are created once by the
// parser and never mutated afterwards.
type Record struct {
	Category         string
	ReviewerID       string
	Rating           float64
	ReviewTitle      string
	ReviewText       string
	AttachedImages   string
	ProductID        string
	ParentProductID  string
	ReviewTimestamp  time.Time
	VerifiedPurchase bool
	HelpfulVotes     int64
}

// Validate checks the record invariants: an extractable identifier and
// a rating inside the valid domain range.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.ReviewerID) == "" || r.ReviewerID == None {
		return fmt.Errorf("%w: missing reviewer id", internalerr.ErrInvalidInput)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("%w: rating %v outside 0-5", internalerr.ErrInvalidInput, r.Rating)
	}
	return nil
}

// Key identifies a review for deduplication and metadata joins.
func (r *Record) Key() string {
	return r.ReviewerID + "|" + r.ProductID + "|" + r.TimestampString()
}

// TimestampString renders the review time in the export format, or the
// placeholder when unset.
func (r *Record) TimestampString() string {
	if r.ReviewTimestamp.IsZero() {
		return None
	}
	return r.ReviewTimestamp.UTC().Format(timeLayout)
}

const timeLayout = "2006-01-02 15:04:05"

// orNone substitutes the placeholder for empty values.
func orNone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return None
	}
	return s
}
