package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
	"github.com/hszk-dev/streamgrab/internal/domain/repository"
	"github.com/hszk-dev/streamgrab/internal/infrastructure/metrics"
	"github.com/hszk-dev/streamgrab/internal/platform"
	"github.com/hszk-dev/streamgrab/internal/ytdlp"
)

var (
	// ErrUnsupportedPlatform is returned when the URL does not match any
	// supported platform, including strings that are not URLs at all.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// ExtractInput contains the input parameters for an extraction request.
// Format and Quality discriminate the cache key; the full format ladder is
// always computed once per URL and callers select a tier client-side.
type ExtractInput struct {
	URL     string
	Format  string
	Quality string
}

// MediaExtractor is the boundary to the external extraction tool.
type MediaExtractor interface {
	// Metadata performs the metadata dump for a URL.
	Metadata(ctx context.Context, url string) (*model.VideoInfo, error)

	// Formats performs the format listing dump for a URL.
	Formats(ctx context.Context, url string) ([]ytdlp.RawFormat, error)

	// DirectURL resolves the retrievable stream URL for one format ID.
	DirectURL(ctx context.Context, url, formatID string) (string, error)
}

// ExtractService defines the interface for extraction business logic.
type ExtractService interface {
	// Extract runs the full pipeline: platform match, metadata dump, format
	// listing, per-tier direct-URL resolution.
	Extract(ctx context.Context, input ExtractInput) (*model.Extraction, error)

	// Info returns metadata only. It performs a single tool invocation and
	// no direct-URL resolution, for callers who don't need the ladder.
	Info(ctx context.Context, url string) (*model.VideoInfo, error)
}

type extractService struct {
	matcher   *platform.Matcher
	extractor MediaExtractor
	resolver  FormatResolver
	history   repository.HistoryRepository
}

// NewExtractService creates a new ExtractService instance. history may be
// nil, in which case no audit trail is written.
func NewExtractService(
	matcher *platform.Matcher,
	extractor MediaExtractor,
	resolver FormatResolver,
	history repository.HistoryRepository,
) ExtractService {
	return &extractService{
		matcher:   matcher,
		extractor: extractor,
		resolver:  resolver,
		history:   history,
	}
}

func (s *extractService) Extract(ctx context.Context, input ExtractInput) (*model.Extraction, error) {
	start := time.Now()

	platformName, ok := s.matcher.Match(input.URL)
	if !ok {
		metrics.ExtractionsTotal.WithLabelValues("none", "unsupported_platform").Inc()
		return nil, ErrUnsupportedPlatform
	}

	info, err := s.extractor.Metadata(ctx, input.URL)
	if err != nil {
		s.finish(ctx, input, platformName, "", start, err)
		return nil, fmt.Errorf("extract metadata: %w", err)
	}

	rawFormats, err := s.extractor.Formats(ctx, input.URL)
	if err != nil {
		s.finish(ctx, input, platformName, info.Title, start, err)
		return nil, fmt.Errorf("list formats: %w", err)
	}

	formats := s.resolver.Resolve(ctx, input.URL, rawFormats)

	extraction := &model.Extraction{
		VideoInfo:      *info,
		Formats:        formats,
		Platform:       platformName,
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}

	s.finish(ctx, input, platformName, info.Title, start, nil)
	return extraction, nil
}

func (s *extractService) Info(ctx context.Context, url string) (*model.VideoInfo, error) {
	if _, ok := s.matcher.Match(url); !ok {
		return nil, ErrUnsupportedPlatform
	}

	info, err := s.extractor.Metadata(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract metadata: %w", err)
	}

	return info, nil
}

// finish records metrics and, when configured, the history row for one
// underlying extraction. History failures are logged, never propagated.
func (s *extractService) finish(ctx context.Context, input ExtractInput, platformName, title string, start time.Time, extractErr error) {
	status := "ok"
	if extractErr != nil {
		status = ytdlp.ErrorKind(extractErr)
	}
	metrics.ExtractionsTotal.WithLabelValues(platformName, status).Inc()

	if s.history == nil {
		return
	}

	record := &repository.ExtractionRecord{
		ID:               uuid.New(),
		URL:              input.URL,
		Platform:         platformName,
		Title:            title,
		RequestedFormat:  input.Format,
		RequestedQuality: input.Quality,
		Status:           status,
		DurationMs:       time.Since(start).Milliseconds(),
		CreatedAt:        time.Now(),
	}

	if err := s.history.Create(ctx, record); err != nil {
		slog.Warn("failed to record extraction history",
			slog.String("url", input.URL),
			slog.Any("error", err),
		)
	}
}
