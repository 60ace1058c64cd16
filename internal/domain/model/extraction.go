package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// VideoInfo holds the per-video metadata reported by the extraction tool.
// Missing upstream fields are represented by their zero values.
type VideoInfo struct {
	Title           string  `json:"title"`
	Thumbnail       string  `json:"thumbnail"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"durationSeconds"`
	Uploader        string  `json:"uploader"`
	ViewCount       int64   `json:"viewCount"`
	UploadDate      string  `json:"uploadDate"`
}

// Format is one downloadable rendition: a video quality tier or the single
// best-audio entry.
type Format struct {
	// Quality is "1080p"-style for video tiers, "audio" for the audio entry.
	Quality string `json:"quality"`
	Ext     string `json:"ext"`
	// URL is empty when direct-URL resolution failed for this tier.
	// Such an entry is metadata only, not downloadable.
	URL    string `json:"url,omitempty"`
	Size   string `json:"size"`
	Codecs string `json:"codecs"`
}

// Resolved reports whether this format carries a usable direct URL.
func (f Format) Resolved() bool {
	return f.URL != ""
}

// Extraction is the full result of an extraction request. It is immutable
// once stored in the cache; callers receive copies.
type Extraction struct {
	VideoInfo
	Formats        []Format `json:"formats"`
	Platform       string   `json:"platform"`
	Cached         bool     `json:"cached"`
	ResponseTimeMs int64    `json:"responseTimeMs"`
}

// Fingerprint derives the cache key for an extraction request.
// Requests differing only in format/quality get distinct entries.
func Fingerprint(url, format, quality string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte{0})
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write([]byte(quality))
	return hex.EncodeToString(h.Sum(nil))[:32]
}
