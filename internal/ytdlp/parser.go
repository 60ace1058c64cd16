package ytdlp

import (
	"encoding/json"
	"strings"

	"github.com/hszk-dev/streamgrab/internal/domain/model"
)

// RawFormat is one rendition as reported by the extractor's format listing.
// yt-dlp reports absent codecs as the literal string "none".
type RawFormat struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec"`
	ACodec         string  `json:"acodec"`
	Height         int     `json:"height"`
	FPS            float64 `json:"fps"`
	ABR            float64 `json:"abr"`
	Filesize       int64   `json:"filesize"`
	FilesizeApprox int64   `json:"filesize_approx"`
	URL            string  `json:"url"`
}

// HasVideo reports whether the entry carries a real video stream.
func (f RawFormat) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// HasAudio reports whether the entry carries a real audio stream.
func (f RawFormat) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}

// SizeBytes returns the best available size estimate, 0 if unknown.
func (f RawFormat) SizeBytes() int64 {
	if f.Filesize > 0 {
		return f.Filesize
	}
	if f.FilesizeApprox > 0 {
		return f.FilesizeApprox
	}
	return 0
}

// metadataJSON mirrors the subset of the extractor's --dump-json document we
// consume. Using an explicit struct avoids coupling the domain model to
// upstream field names.
type metadataJSON struct {
	Title      string      `json:"title"`
	Thumbnail  string      `json:"thumbnail"`
	Duration   float64     `json:"duration"`
	Uploader   string      `json:"uploader"`
	ViewCount  int64       `json:"view_count"`
	UploadDate string      `json:"upload_date"`
	Formats    []RawFormat `json:"formats"`
}

// ParseMetadata parses a single metadata JSON document. Missing optional
// fields fall back to zero values; only malformed JSON is an error.
func ParseMetadata(raw string) (*model.VideoInfo, error) {
	var doc metadataJSON
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Reason: "invalid metadata document", Err: err}
	}

	return &model.VideoInfo{
		Title:           doc.Title,
		Thumbnail:       doc.Thumbnail,
		Duration:        model.RenderDuration(doc.Duration),
		DurationSeconds: doc.Duration,
		Uploader:        doc.Uploader,
		ViewCount:       doc.ViewCount,
		UploadDate:      doc.UploadDate,
	}, nil
}

// ParseFormats parses a line-delimited listing dump. The tool may emit
// warnings or partial progress lines before the final structured record, so
// the last line that parses as a metadata document is authoritative.
func ParseFormats(raw string) ([]RawFormat, error) {
	lines := strings.Split(raw, "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		var doc metadataJSON
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			continue
		}
		return doc.Formats, nil
	}

	return nil, &ParseError{Reason: "no parsable format listing line"}
}
