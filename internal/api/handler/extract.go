package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hszk-dev/streamgrab/internal/domain/repository"
	"github.com/hszk-dev/streamgrab/internal/platform"
	"github.com/hszk-dev/streamgrab/internal/usecase"
	"github.com/hszk-dev/streamgrab/internal/ytdlp"
)

// Request/Response types

type DownloadRequest struct {
	VideoURL string `json:"videoUrl"`
	Format   string `json:"format"`
	Quality  string `json:"quality"`
}

type InfoRequest struct {
	VideoURL string `json:"videoUrl"`
}

type PlatformEntry struct {
	Name    string `json:"name"`
	Example string `json:"example"`
}

type PlatformsResponse struct {
	Platforms []PlatformEntry `json:"platforms"`
}

type HistoryResponse struct {
	Records []*repository.ExtractionRecord `json:"records"`
}

// downloadTroubleshooting is the fixed set of generic hints attached to
// extraction failures. Hints are deliberately not root-caused per failure
// kind; the taxonomy is tagged internally for observability instead.
var downloadTroubleshooting = []string{
	"Check that the video URL is correct and publicly accessible",
	"The video may be private, age-restricted, or removed",
	"Try again in a few minutes",
	"Make sure the extraction tool is up to date",
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// ExtractHandler handles extraction-related HTTP requests.
type ExtractHandler struct {
	svc     usecase.ExtractService
	matcher *platform.Matcher
	history repository.HistoryRepository
}

// NewExtractHandler creates a new ExtractHandler. history may be nil, in
// which case the history endpoint reports unavailability.
func NewExtractHandler(svc usecase.ExtractService, matcher *platform.Matcher, history repository.HistoryRepository) *ExtractHandler {
	return &ExtractHandler{svc: svc, matcher: matcher, history: history}
}

// Download handles POST /api/download
func (h *ExtractHandler) Download(w http.ResponseWriter, r *http.Request) {
	var req DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.VideoURL == "" {
		Error(w, http.StatusBadRequest, "Video URL is required")
		return
	}

	extraction, err := h.svc.Extract(r.Context(), usecase.ExtractInput{
		URL:     req.VideoURL,
		Format:  req.Format,
		Quality: req.Quality,
	})
	if err != nil {
		h.handleExtractionError(w, err, true)
		return
	}

	JSON(w, http.StatusOK, extraction)
}

// Info handles POST /api/info
func (h *ExtractHandler) Info(w http.ResponseWriter, r *http.Request) {
	var req InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.VideoURL == "" {
		Error(w, http.StatusBadRequest, "Video URL is required")
		return
	}

	info, err := h.svc.Info(r.Context(), req.VideoURL)
	if err != nil {
		h.handleExtractionError(w, err, false)
		return
	}

	JSON(w, http.StatusOK, info)
}

// Platforms handles GET /api/platforms
func (h *ExtractHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	platforms := h.matcher.Platforms()

	entries := make([]PlatformEntry, len(platforms))
	for i, p := range platforms {
		entries[i] = PlatformEntry{Name: p.Name, Example: p.Example}
	}

	JSON(w, http.StatusOK, PlatformsResponse{Platforms: entries})
}

// History handles GET /api/history
func (h *ExtractHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		Error(w, http.StatusServiceUnavailable, "Extraction history is not configured")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.history.ListRecent(r.Context(), limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "Failed to load extraction history")
		return
	}
	if records == nil {
		records = []*repository.ExtractionRecord{}
	}

	JSON(w, http.StatusOK, HistoryResponse{Records: records})
}

// handleExtractionError maps the error taxonomy onto the HTTP surface.
// Download failures carry troubleshooting hints; info failures do not.
func (h *ExtractHandler) handleExtractionError(w http.ResponseWriter, err error, withHints bool) {
	var spawnErr *ytdlp.SpawnError

	switch {
	case errors.Is(err, usecase.ErrUnsupportedPlatform):
		Unsupported(w, "Unsupported or invalid video URL", h.matcher.Names())
	case errors.As(err, &spawnErr):
		Failure(w, "Extraction tool is not available on the server", []string{
			"Install yt-dlp and make sure it is on the server's PATH",
		})
	default:
		if withHints {
			Failure(w, "Failed to extract video information", downloadTroubleshooting)
			return
		}
		Failure(w, "Failed to extract video information", nil)
	}
}
