package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExtractionRecord is one row of the extraction audit trail. Records are
// written for every underlying extraction (cache hits never reach the tool
// and are not recorded).
type ExtractionRecord struct {
	ID               uuid.UUID `json:"id"`
	URL              string    `json:"url"`
	Platform         string    `json:"platform"`
	Title            string    `json:"title,omitempty"`
	RequestedFormat  string    `json:"requestedFormat,omitempty"`
	RequestedQuality string    `json:"requestedQuality,omitempty"`
	// Status is "ok" or the failure kind (tool_failure, parse_failure, ...).
	Status     string    `json:"status"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryRepository defines the interface for extraction history persistence.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type HistoryRepository interface {
	// Create persists a new extraction record.
	Create(ctx context.Context, record *ExtractionRecord) error

	// ListRecent retrieves the most recent extraction records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*ExtractionRecord, error)
}
