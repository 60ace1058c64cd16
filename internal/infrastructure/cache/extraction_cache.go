package cache

import (
	"context"
	"time"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
)

// ExtractionCache defines the interface for caching extraction results.
// Keys are request fingerprints (see model.Fingerprint). Entries are
// immutable once stored; a fresh extraction replaces an entry, never mutates
// it. Expired entries are indistinguishable from absent ones.
type ExtractionCache interface {
	// Get retrieves an extraction by fingerprint.
	// Returns nil, nil if the entry is absent or expired (cache miss).
	Get(ctx context.Context, key string) (*model.Extraction, error)

	// Set stores an extraction with the specified TTL.
	Set(ctx context.Context, key string, extraction *model.Extraction, ttl time.Duration) error

	// Delete removes an extraction by fingerprint.
	// Returns nil if the entry was not cached.
	Delete(ctx context.Context, key string) error
}
