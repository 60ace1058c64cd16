package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
	"github.com/hszk-dev/streamgrab/internal/infrastructure/cache"
	"github.com/hszk-dev/streamgrab/internal/infrastructure/metrics"
)

// CachedExtractServiceConfig holds configuration for CachedExtractService.
type CachedExtractServiceConfig struct {
	// CacheTTL is the TTL for cached extraction results. Fixed at startup;
	// there is no per-entry override.
	CacheTTL time.Duration
}

// DefaultCachedExtractServiceConfig returns the default configuration.
func DefaultCachedExtractServiceConfig() CachedExtractServiceConfig {
	return CachedExtractServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedExtractService wraps ExtractService with result caching and in-flight
// deduplication. It implements the decorator pattern so the underlying
// pipeline stays cache-unaware.
type cachedExtractService struct {
	delegate ExtractService
	cache    cache.ExtractionCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedExtractService creates a CachedExtractService wrapping the
// provided ExtractService.
func NewCachedExtractService(
	delegate ExtractService,
	extractionCache cache.ExtractionCache,
	cfg CachedExtractServiceConfig,
) ExtractService {
	return &cachedExtractService{
		delegate: delegate,
		cache:    extractionCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// cacheLookup carries the shared result of one coalesced lookup.
type cacheLookup struct {
	extraction *model.Extraction
	hit        bool
}

// Extract serves from cache within the TTL and collapses concurrent misses
// for the same fingerprint into a single underlying extraction.
func (s *cachedExtractService) Extract(ctx context.Context, input ExtractInput) (*model.Extraction, error) {
	start := time.Now()
	key := model.Fingerprint(input.URL, input.Format, input.Quality)

	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.extractWithCache(ctx, key, input)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	lookup := result.(*cacheLookup)

	// Serve a copy: cache entries are immutable once stored, and the same
	// pointer is handed to every singleflight waiter.
	extraction := *lookup.extraction
	extraction.Cached = lookup.hit
	extraction.ResponseTimeMs = time.Since(start).Milliseconds()
	return &extraction, nil
}

// extractWithCache implements the cache-aside pattern. Failed extractions
// are never stored.
func (s *cachedExtractService) extractWithCache(ctx context.Context, key string, input ExtractInput) (*cacheLookup, error) {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("cache get failed, falling back to extraction",
			slog.String("url", input.URL),
			slog.Any("error", err),
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
	} else if cached != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
		return &cacheLookup{extraction: cached, hit: true}, nil
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
	}

	extraction, err := s.delegate.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, extraction, s.cacheTTL); err != nil {
		slog.Warn("failed to cache extraction",
			slog.String("url", input.URL),
			slog.Any("error", err),
		)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	}

	return &cacheLookup{extraction: extraction, hit: false}, nil
}

// Info delegates directly: info calls are a single cheap invocation and are
// not memoized.
func (s *cachedExtractService) Info(ctx context.Context, url string) (*model.VideoInfo, error) {
	return s.delegate.Info(ctx, url)
}
