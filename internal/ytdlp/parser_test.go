package ytdlp

import (
	"errors"
	"testing"
)

func TestParseMetadata(t *testing.T) {
	raw := `{
		"title": "Never Gonna Give You Up",
		"thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		"duration": 212,
		"uploader": "Rick Astley",
		"view_count": 1400000000,
		"upload_date": "20091025"
	}`

	info, err := ParseMetadata(raw)
	if err != nil {
		t.Fatalf("ParseMetadata failed: %v", err)
	}

	if info.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.Duration != "3:32" {
		t.Errorf("Duration = %q, want 3:32", info.Duration)
	}
	if info.DurationSeconds != 212 {
		t.Errorf("DurationSeconds = %v, want 212", info.DurationSeconds)
	}
	if info.ViewCount != 1400000000 {
		t.Errorf("ViewCount = %d", info.ViewCount)
	}
	if info.UploadDate != "20091025" {
		t.Errorf("UploadDate = %q", info.UploadDate)
	}
}

func TestParseMetadata_MissingFieldsDefault(t *testing.T) {
	info, err := ParseMetadata(`{"title": "Untitled"}`)
	if err != nil {
		t.Fatalf("ParseMetadata failed: %v", err)
	}

	if info.Duration != "0:00" {
		t.Errorf("Duration = %q, want 0:00 for absent duration", info.Duration)
	}
	if info.Uploader != "" || info.UploadDate != "" {
		t.Errorf("expected empty defaults, got uploader=%q upload_date=%q", info.Uploader, info.UploadDate)
	}
	if info.ViewCount != 0 {
		t.Errorf("ViewCount = %d, want 0", info.ViewCount)
	}
}

func TestParseMetadata_Malformed(t *testing.T) {
	_, err := ParseMetadata("ERROR: unable to download webpage")
	if err == nil {
		t.Fatal("expected error for malformed document")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
}

func TestParseFormats_LastLineAuthoritative(t *testing.T) {
	raw := "WARNING: some players are broken\n" +
		`{"formats": [{"format_id": "1", "height": 360, "vcodec": "avc1", "acodec": "none"}]}` + "\n" +
		`{"formats": [{"format_id": "137", "height": 1080, "vcodec": "avc1.640028", "acodec": "none"}, {"format_id": "140", "vcodec": "none", "acodec": "mp4a.40.2", "abr": 129.5}]}` + "\n\n"

	formats, err := ParseFormats(raw)
	if err != nil {
		t.Fatalf("ParseFormats failed: %v", err)
	}

	if len(formats) != 2 {
		t.Fatalf("len(formats) = %d, want 2 (from last line)", len(formats))
	}
	if formats[0].FormatID != "137" {
		t.Errorf("FormatID = %q, want 137", formats[0].FormatID)
	}
	if !formats[0].HasVideo() || formats[0].HasAudio() {
		t.Error("first entry should be video-only")
	}
	if formats[1].HasVideo() || !formats[1].HasAudio() {
		t.Error("second entry should be audio-only")
	}
}

func TestParseFormats_TrailingGarbageSkipped(t *testing.T) {
	raw := `{"formats": [{"format_id": "22", "height": 720, "vcodec": "avc1", "acodec": "mp4a"}]}` + "\n" +
		"WARNING: throttled, retrying\n"

	formats, err := ParseFormats(raw)
	if err != nil {
		t.Fatalf("ParseFormats failed: %v", err)
	}
	if len(formats) != 1 || formats[0].FormatID != "22" {
		t.Errorf("formats = %+v, want the single parsable record", formats)
	}
}

func TestParseFormats_NoUsableLine(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "WARNING: a\nWARNING: b\n"} {
		_, err := ParseFormats(raw)
		if err == nil {
			t.Fatalf("ParseFormats(%q) expected error", raw)
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("error = %T, want *ParseError", err)
		}
	}
}

func TestRawFormat_SizeBytes(t *testing.T) {
	tests := []struct {
		name string
		f    RawFormat
		want int64
	}{
		{"exact size preferred", RawFormat{Filesize: 100, FilesizeApprox: 200}, 100},
		{"approx fallback", RawFormat{FilesizeApprox: 200}, 200},
		{"unknown", RawFormat{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.SizeBytes(); got != tt.want {
				t.Errorf("SizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}
