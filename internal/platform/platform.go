// Package platform classifies media URLs into the fixed set of supported
// source platforms.
package platform

import (
	"net/url"
	"regexp"
	"strings"
)

// Platform describes one supported source site.
type Platform struct {
	// Name is the user-visible platform name (e.g. "YouTube").
	Name string
	// hostPattern is matched against the URL's hostname.
	hostPattern *regexp.Regexp
	// Example is a representative URL shape, returned by the platforms listing.
	Example string
}

// Matcher tests URLs against an ordered set of platforms. The first match
// wins, so more specific patterns must come first.
type Matcher struct {
	platforms []Platform
}

// NewMatcher creates a Matcher over the given platforms, evaluated in order.
func NewMatcher(platforms []Platform) *Matcher {
	return &Matcher{platforms: platforms}
}

// Default returns the built-in platform set.
func Default() []Platform {
	return []Platform{
		{Name: "YouTube", hostPattern: regexp.MustCompile(`(^|\.)(youtube\.com|youtu\.be)$`), Example: "https://www.youtube.com/watch?v=..."},
		{Name: "TikTok", hostPattern: regexp.MustCompile(`(^|\.)tiktok\.com$`), Example: "https://www.tiktok.com/@user/video/..."},
		{Name: "Instagram", hostPattern: regexp.MustCompile(`(^|\.)instagram\.com$`), Example: "https://www.instagram.com/reel/..."},
		{Name: "Twitter", hostPattern: regexp.MustCompile(`(^|\.)(twitter\.com|x\.com)$`), Example: "https://x.com/user/status/..."},
		{Name: "Facebook", hostPattern: regexp.MustCompile(`(^|\.)(facebook\.com|fb\.watch)$`), Example: "https://www.facebook.com/watch?v=..."},
		{Name: "Vimeo", hostPattern: regexp.MustCompile(`(^|\.)vimeo\.com$`), Example: "https://vimeo.com/..."},
		{Name: "Twitch", hostPattern: regexp.MustCompile(`(^|\.)twitch\.tv$`), Example: "https://www.twitch.tv/videos/..."},
		{Name: "Reddit", hostPattern: regexp.MustCompile(`(^|\.)reddit\.com$`), Example: "https://www.reddit.com/r/.../comments/..."},
		{Name: "SoundCloud", hostPattern: regexp.MustCompile(`(^|\.)soundcloud\.com$`), Example: "https://soundcloud.com/artist/track"},
		{Name: "Dailymotion", hostPattern: regexp.MustCompile(`(^|\.)dailymotion\.com$`), Example: "https://www.dailymotion.com/video/..."},
	}
}

// Match classifies a raw URL string. A string that does not parse as an
// http(s) URL is simply not supported; Match never fails.
func (m *Matcher) Match(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}

	for _, p := range m.platforms {
		if p.hostPattern.MatchString(host) {
			return p.Name, true
		}
	}
	return "", false
}

// Platforms returns the configured platform set in priority order.
func (m *Matcher) Platforms() []Platform {
	out := make([]Platform, len(m.platforms))
	copy(out, m.platforms)
	return out
}

// Names returns the platform names in priority order.
func (m *Matcher) Names() []string {
	names := make([]string, len(m.platforms))
	for i, p := range m.platforms {
		names[i] = p.Name
	}
	return names
}
