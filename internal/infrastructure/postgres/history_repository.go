package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/streamgrab/internal/domain/repository"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HistoryRepository implements repository.HistoryRepository using PostgreSQL.
type HistoryRepository struct {
	db DBTX
}

var _ repository.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository instance.
func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create persists a new extraction record.
func (r *HistoryRepository) Create(ctx context.Context, record *repository.ExtractionRecord) error {
	const query = `
		INSERT INTO extraction_history
			(id, url, platform, title, requested_format, requested_quality, status, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.URL,
		record.Platform,
		nullString(record.Title),
		nullString(record.RequestedFormat),
		nullString(record.RequestedQuality),
		record.Status,
		record.DurationMs,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction record: %w", err)
	}

	return nil
}

// ListRecent retrieves the most recent extraction records, newest first.
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]*repository.ExtractionRecord, error) {
	const query = `
		SELECT id, url, platform, title, requested_format, requested_quality, status, duration_ms, created_at
		FROM extraction_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction history: %w", err)
	}
	defer rows.Close()

	var records []*repository.ExtractionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extraction record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating extraction history: %w", err)
	}

	return records, nil
}

func scanRecord(rows pgx.Rows) (*repository.ExtractionRecord, error) {
	var (
		record           repository.ExtractionRecord
		title            *string
		requestedFormat  *string
		requestedQuality *string
	)

	err := rows.Scan(
		&record.ID,
		&record.URL,
		&record.Platform,
		&title,
		&requestedFormat,
		&requestedQuality,
		&record.Status,
		&record.DurationMs,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if title != nil {
		record.Title = *title
	}
	if requestedFormat != nil {
		record.RequestedFormat = *requestedFormat
	}
	if requestedQuality != nil {
		record.RequestedQuality = *requestedQuality
	}

	return &record, nil
}

// nullString returns nil for empty strings, otherwise a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
