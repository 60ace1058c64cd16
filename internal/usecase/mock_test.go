package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
	"github.com/hszk-dev/streamgrab/internal/domain/repository"
	"github.com/hszk-dev/streamgrab/internal/ytdlp"
)

// mockExtractor is a mock implementation of MediaExtractor for testing.
type mockExtractor struct {
	metadataFn  func(ctx context.Context, url string) (*model.VideoInfo, error)
	formatsFn   func(ctx context.Context, url string) ([]ytdlp.RawFormat, error)
	directURLFn func(ctx context.Context, url, formatID string) (string, error)

	metadataCount  atomic.Int32
	formatsCount   atomic.Int32
	directURLCount atomic.Int32
}

func (m *mockExtractor) Metadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	m.metadataCount.Add(1)
	if m.metadataFn != nil {
		return m.metadataFn(ctx, url)
	}
	return &model.VideoInfo{Title: "Test Video", Duration: "0:00"}, nil
}

func (m *mockExtractor) Formats(ctx context.Context, url string) ([]ytdlp.RawFormat, error) {
	m.formatsCount.Add(1)
	if m.formatsFn != nil {
		return m.formatsFn(ctx, url)
	}
	return nil, nil
}

func (m *mockExtractor) DirectURL(ctx context.Context, url, formatID string) (string, error) {
	m.directURLCount.Add(1)
	if m.directURLFn != nil {
		return m.directURLFn(ctx, url, formatID)
	}
	return "https://cdn.example.com/" + formatID, nil
}

// mockResolver is a mock implementation of FormatResolver for testing.
type mockResolver struct {
	resolveFn    func(ctx context.Context, videoURL string, raw []ytdlp.RawFormat) []model.Format
	resolveCount atomic.Int32
}

func (m *mockResolver) Resolve(ctx context.Context, videoURL string, raw []ytdlp.RawFormat) []model.Format {
	m.resolveCount.Add(1)
	if m.resolveFn != nil {
		return m.resolveFn(ctx, videoURL, raw)
	}
	return []model.Format{}
}

// mockExtractService is a mock implementation of ExtractService for testing
// the caching decorator.
type mockExtractService struct {
	extractFn    func(ctx context.Context, input ExtractInput) (*model.Extraction, error)
	infoFn       func(ctx context.Context, url string) (*model.VideoInfo, error)
	extractCount atomic.Int32
}

func (m *mockExtractService) Extract(ctx context.Context, input ExtractInput) (*model.Extraction, error) {
	m.extractCount.Add(1)
	if m.extractFn != nil {
		return m.extractFn(ctx, input)
	}
	return &model.Extraction{}, nil
}

func (m *mockExtractService) Info(ctx context.Context, url string) (*model.VideoInfo, error) {
	if m.infoFn != nil {
		return m.infoFn(ctx, url)
	}
	return &model.VideoInfo{}, nil
}

// mockExtractionCache is an in-memory mock of cache.ExtractionCache.
type mockExtractionCache struct {
	mu    sync.RWMutex
	data  map[string]*model.Extraction
	getFn func(ctx context.Context, key string) (*model.Extraction, error)
	setFn func(ctx context.Context, key string, extraction *model.Extraction, ttl time.Duration) error
}

func newMockExtractionCache() *mockExtractionCache {
	return &mockExtractionCache{
		data: make(map[string]*model.Extraction),
	}
}

func (m *mockExtractionCache) Get(ctx context.Context, key string) (*model.Extraction, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *mockExtractionCache) Set(ctx context.Context, key string, extraction *model.Extraction, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, extraction, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = extraction
	return nil
}

func (m *mockExtractionCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockHistoryRepository records created rows in memory.
type mockHistoryRepository struct {
	mu       sync.Mutex
	records  []*repository.ExtractionRecord
	createFn func(ctx context.Context, record *repository.ExtractionRecord) error
}

func (m *mockHistoryRepository) Create(ctx context.Context, record *repository.ExtractionRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *mockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]*repository.ExtractionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]*repository.ExtractionRecord, limit)
	copy(out, m.records)
	return out, nil
}
