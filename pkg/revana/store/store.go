// Package store defines the persistence interface for parsed review
// records, token document frequencies, and pipeline run manifests.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognitext/revana/pkg/revana/parse"
)

// Store persists pipeline state. Implementations must be safe for
// concurrent use.
type Store interface {
	Close() error

	// Records
	UpsertRecord(ctx context.Context, rec parse.Record) error
	GetRecord(ctx context.Context, key string) (parse.Record, error)
	ListRecords(ctx context.Context) ([]parse.Record, error)
	RecordsByParentProduct(ctx context.Context, parentProductID string) ([]parse.Record, error)
	CountRecords(ctx context.Context) (int64, error)

	// Token document frequencies, counted over product groups
	UpsertTokenDF(ctx context.Context, token string, df int64) error
	GetTokenDF(ctx context.Context, token string) (int64, error)
	AllTokenDF(ctx context.Context) (map[string]int64, error)

	// Run manifests
	PutRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// Run is the manifest of one pipeline invocation.
type Run struct {
	ID         string // ULID, lexicographically sorted by start time
	Stage      string // "parse" or "preprocess"
	StartedAt  time.Time
	FinishedAt time.Time
	Records    int64
	Skipped    int64
	Tokens     int64
	VocabSize  int64
}

// NewRunID mints a ULID for a run starting now.
func NewRunID() string {
	return ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String()
}
