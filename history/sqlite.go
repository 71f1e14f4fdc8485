package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// Store persists and queries Records. The only implementation in this
// package is SQLiteStore, but Driver depends on the interface so tests
// can substitute an in-memory fake.
type Store interface {
	// Record persists rec, assigning ID and CreatedAt if unset.
	Record(ctx context.Context, rec *Record) error

	// Recent returns up to limit records for jobID, most recent first.
	// An empty jobID returns records for all jobs. limit <= 0 means no
	// limit.
	Recent(ctx context.Context, jobID string, limit int) ([]*Record, error)

	// Prune deletes records older than olderThan and reports how many
	// were removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	Close() error
}

// SQLiteStore is a Store backed by modernc.org/sqlite through bun.
type SQLiteStore struct {
	db *bun.DB
}

// Open opens (creating if necessary) a SQLite database at dsn and
// ensures the history_records table exists.
//
// dsn follows modernc.org/sqlite's conventions, e.g. "file:history.db"
// or ":memory:" for an ephemeral store used in tests.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.NewInsert().Model(rec).Exec(ctx)
	return err
}

func (s *SQLiteStore) Recent(ctx context.Context, jobID string, limit int) ([]*Record, error) {
	var records []*Record
	q := s.db.NewSelect().Model(&records).OrderExpr("created_at DESC")
	if jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.NewDelete().Model((*Record)(nil)).Where("created_at < ?", olderThan).Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
