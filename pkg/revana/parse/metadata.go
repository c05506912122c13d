package parse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cognitext/revana/pkg/revana/internalerr"
)

// requiredColumns is the expected metadata header. A source missing
// any of these is malformed and aborts the run.
var requiredColumns = []string{
	"category",
	"reviewer_id",
	"rating",
	"review_title",
	"review_text",
	"attached_images",
	"product_id",
	"parent_product_id",
	"review_timestamp",
	"is_verified_purchase",
	"helpful_votes",
}

// MetadataRow carries the tabular fields for one reviewer, untyped as
// they appear in the source.
type MetadataRow struct {
	Category         string
	ReviewerID       string
	Rating           string
	ReviewTitle      string
	ReviewText       string
	AttachedImages   string
	ProductID        string
	ParentProductID  string
	ReviewTimestamp  string
	VerifiedPurchase string
	HelpfulVotes     string
}

// Metadata is the tabular metadata source, keyed by reviewer ID.
type Metadata struct {
	rows map[string]MetadataRow
}

// Lookup returns the metadata row for a reviewer ID (case-insensitive).
func (m *Metadata) Lookup(reviewerID string) (MetadataRow, bool) {
	row, ok := m.rows[strings.ToLower(strings.TrimSpace(reviewerID))]
	return row, ok
}

// Len returns the number of metadata rows.
func (m *Metadata) Len() int {
	return len(m.rows)
}

// LoadMetadataCSV reads the tabular metadata source. A header missing
// any required column is a fatal condition. Columns prefixed "X" are
// scratch columns in the source and are ignored, as are rows without a
// reviewer ID. Later rows win on duplicate IDs.
func LoadMetadataCSV(r io.Reader) (*Metadata, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read metadata header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if strings.HasPrefix(name, "x") && !isRequired(name) {
			continue
		}
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", internalerr.ErrMissingColumn, name)
		}
	}

	field := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	meta := &Metadata{rows: make(map[string]MetadataRow)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read metadata row: %w", err)
		}

		id := strings.ToLower(field(row, "reviewer_id"))
		if id == "" || id == None {
			continue
		}
		meta.rows[id] = MetadataRow{
			Category:         field(row, "category"),
			ReviewerID:       id,
			Rating:           field(row, "rating"),
			ReviewTitle:      field(row, "review_title"),
			ReviewText:       field(row, "review_text"),
			AttachedImages:   field(row, "attached_images"),
			ProductID:        field(row, "product_id"),
			ParentProductID:  field(row, "parent_product_id"),
			ReviewTimestamp:  field(row, "review_timestamp"),
			VerifiedPurchase: field(row, "is_verified_purchase"),
			HelpfulVotes:     field(row, "helpful_votes"),
		}
	}

	return meta, nil
}

func isRequired(name string) bool {
	for _, c := range requiredColumns {
		if c == name {
			return true
		}
	}
	return false
}
