package model

import "testing"

func TestRenderDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00"},
		{"negative treated as unknown", -5, "0:00"},
		{"under a minute", 42, "0:42"},
		{"minutes and seconds", 212, "3:32"},
		{"just under an hour", 3599, "59:59"},
		{"exactly an hour", 3600, "1:00:00"},
		{"hours minutes seconds", 3725, "1:02:05"},
		{"fractional seconds truncated", 61.9, "1:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderDuration(tt.seconds); got != tt.want {
				t.Errorf("RenderDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestRenderSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"negative treated as unknown", -1, "0 B"},
		{"bytes", 512, "512.00 B"},
		{"kilobytes", 2048, "2.00 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.00 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.00 GB"},
		{"fractional megabytes", 1572864, "1.50 MB"},
		{"caps at gigabytes", 2048 * 1024 * 1024 * 1024, "2048.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSize(tt.bytes); got != tt.want {
				t.Errorf("RenderSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("https://example.com/v", "mp4", "1080p")

	if b := Fingerprint("https://example.com/v", "mp4", "1080p"); b != a {
		t.Errorf("identical inputs produced different fingerprints: %q vs %q", a, b)
	}

	if b := Fingerprint("https://example.com/v", "mp4", "720p"); b == a {
		t.Error("quality change did not change the fingerprint")
	}

	if b := Fingerprint("https://example.com/v", "mp3", "1080p"); b == a {
		t.Error("format change did not change the fingerprint")
	}

	// Field boundaries must not be ambiguous.
	if Fingerprint("a", "bc", "") == Fingerprint("ab", "c", "") {
		t.Error("fingerprint collapses field boundaries")
	}
}
