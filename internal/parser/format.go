package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatTimestamp renders seconds as H:MM:SS, or M:SS under an hour.
func FormatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

var (
	bareVideoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	videoURLRe    = regexp.MustCompile(`(?:v=|youtu\.be/|/live/|/shorts/|/embed/)([A-Za-z0-9_-]{11})`)
)

// ExtractVideoID accepts a watch/live/share URL or a bare 11-character id.
func ExtractVideoID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if bareVideoIDRe.MatchString(s) {
		return s, nil
	}
	if m := videoURLRe.FindStringSubmatch(s); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("could not extract video id from %q", raw)
}

// WatchURL builds a deep link into the video, optionally seeked.
func WatchURL(videoID string, atSec float64) string {
	u := "https://www.youtube.com/watch?v=" + videoID
	if atSec > 0 {
		u += fmt.Sprintf("&t=%ds", int(atSec))
	}
	return u
}
