// Package sqlite implements store.Store on a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognitext/revana/pkg/revana/internalerr"
	"github.com/cognitext/revana/pkg/revana/parse"
	"github.com/cognitext/revana/pkg/revana/store"
)

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database with WAL mode
// enabled and the schema applied.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for concurrent readers during ingest
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS records (
	key TEXT PRIMARY KEY,
	category TEXT,
	reviewer_id TEXT NOT NULL,
	rating REAL,
	review_title TEXT,
	review_text TEXT,
	attached_images TEXT,
	product_id TEXT,
	parent_product_id TEXT,
	review_timestamp TEXT,
	verified_purchase INTEGER DEFAULT 0,
	helpful_votes INTEGER DEFAULT 0,
	inserted_seq INTEGER
);

CREATE INDEX IF NOT EXISTS idx_records_parent ON records(parent_product_id);

CREATE TABLE IF NOT EXISTS token_df (
	token TEXT PRIMARY KEY,
	df INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	stage TEXT NOT NULL,
	started_at TEXT,
	finished_at TEXT,
	records INTEGER DEFAULT 0,
	skipped INTEGER DEFAULT 0,
	tokens INTEGER DEFAULT 0,
	vocab_size INTEGER DEFAULT 0
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecord inserts or replaces a record, keyed by its identity.
func (s *sqliteStore) UpsertRecord(ctx context.Context, rec parse.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	const stmt = `
INSERT INTO records (
	key, category, reviewer_id, rating, review_title, review_text,
	attached_images, product_id, parent_product_id, review_timestamp,
	verified_purchase, helpful_votes, inserted_seq
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	(SELECT COALESCE(MAX(inserted_seq), 0) + 1 FROM records))
ON CONFLICT(key) DO UPDATE SET
	category=excluded.category,
	rating=excluded.rating,
	review_title=excluded.review_title,
	review_text=excluded.review_text,
	attached_images=excluded.attached_images,
	parent_product_id=excluded.parent_product_id,
	verified_purchase=excluded.verified_purchase,
	helpful_votes=excluded.helpful_votes;
`

	_, err := s.db.ExecContext(
		ctx,
		stmt,
		rec.Key(),
		rec.Category,
		rec.ReviewerID,
		rec.Rating,
		rec.ReviewTitle,
		rec.ReviewText,
		rec.AttachedImages,
		rec.ProductID,
		rec.ParentProductID,
		formatTime(rec.ReviewTimestamp),
		boolToInt(rec.VerifiedPurchase),
		rec.HelpfulVotes,
	)
	return err
}

const recordColumns = `category, reviewer_id, rating, review_title, review_text,
	attached_images, product_id, parent_product_id, review_timestamp,
	verified_purchase, helpful_votes`

// GetRecord returns the record with the given identity key.
func (s *sqliteStore) GetRecord(ctx context.Context, key string) (parse.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE key = ?", key)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return parse.Record{}, fmt.Errorf("%w: record %q", internalerr.ErrNotFound, key)
	}
	return rec, err
}

// ListRecords returns all records in insertion order.
func (s *sqliteStore) ListRecords(ctx context.Context) ([]parse.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY inserted_seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// RecordsByParentProduct returns one product group's records in
// insertion order.
func (s *sqliteStore) RecordsByParentProduct(ctx context.Context, parentProductID string) ([]parse.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE parent_product_id = ? ORDER BY inserted_seq",
		parentProductID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// CountRecords returns the number of stored records.
func (s *sqliteStore) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

// UpsertTokenDF sets the document frequency for a token.
func (s *sqliteStore) UpsertTokenDF(ctx context.Context, token string, df int64) error {
	const stmt = `
INSERT INTO token_df (token, df) VALUES (?, ?)
ON CONFLICT(token) DO UPDATE SET df=excluded.df;
`
	_, err := s.db.ExecContext(ctx, stmt, token, df)
	return err
}

// GetTokenDF returns the document frequency for a token, zero when
// the token is unknown.
func (s *sqliteStore) GetTokenDF(ctx context.Context, token string) (int64, error) {
	var df int64
	err := s.db.QueryRowContext(ctx,
		"SELECT df FROM token_df WHERE token = ?", token).Scan(&df)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return df, err
}

// AllTokenDF returns the full document-frequency table.
func (s *sqliteStore) AllTokenDF(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT token, df FROM token_df")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var tok string
		var df int64
		if err := rows.Scan(&tok, &df); err != nil {
			return nil, err
		}
		out[tok] = df
	}
	return out, rows.Err()
}

// PutRun stores a run manifest.
func (s *sqliteStore) PutRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is empty", internalerr.ErrInvalidInput)
	}

	const stmt = `
INSERT INTO runs (id, stage, started_at, finished_at, records, skipped, tokens, vocab_size)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	stage=excluded.stage,
	finished_at=excluded.finished_at,
	records=excluded.records,
	skipped=excluded.skipped,
	tokens=excluded.tokens,
	vocab_size=excluded.vocab_size;
`
	_, err := s.db.ExecContext(
		ctx,
		stmt,
		run.ID,
		run.Stage,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.Records,
		run.Skipped,
		run.Tokens,
		run.VocabSize,
	)
	return err
}

// GetRun returns a run manifest by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, stage, started_at, finished_at, records, skipped, tokens, vocab_size FROM runs WHERE id = ?",
		id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, fmt.Errorf("%w: run %q", internalerr.ErrNotFound, id)
	}
	return run, err
}

// ListRuns returns manifests newest-first, at most limit of them.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	q := "SELECT id, stage, started_at, finished_at, records, skipped, tokens, vocab_size FROM runs ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (parse.Record, error) {
	var rec parse.Record
	var ts string
	var verified int

	err := row.Scan(
		&rec.Category,
		&rec.ReviewerID,
		&rec.Rating,
		&rec.ReviewTitle,
		&rec.ReviewText,
		&rec.AttachedImages,
		&rec.ProductID,
		&rec.ParentProductID,
		&ts,
		&verified,
		&rec.HelpfulVotes,
	)
	if err != nil {
		return parse.Record{}, err
	}

	rec.ReviewTimestamp = parseTime(ts)
	rec.VerifiedPurchase = verified != 0
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]parse.Record, error) {
	var out []parse.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRun(row scanner) (store.Run, error) {
	var run store.Run
	var started, finished string

	err := row.Scan(
		&run.ID,
		&run.Stage,
		&started,
		&finished,
		&run.Records,
		&run.Skipped,
		&run.Tokens,
		&run.VocabSize,
	)
	if err != nil {
		return store.Run{}, err
	}

	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	return run, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
