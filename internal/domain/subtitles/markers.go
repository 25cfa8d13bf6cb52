package subtitles

import (
	"strings"

	"kiricut/internal/types"
)

// DefaultTopicMarkers are transition phrases common in Japanese streams,
// roughly "next", "well then", "continuing", "now", "from here",
// "from now", "first", "finally".
func DefaultTopicMarkers() []string {
	return []string{"次は", "それでは", "続いて", "さて", "ここから", "これから", "まず", "最後に"}
}

// ScanTopicMarkers reports where transition phrases occur in the subtitle
// lines. Each line contributes at most one hit, for the first marker found
// in it.
func ScanTopicMarkers(lines []types.SubtitleLine, markers []string) []types.TopicMarker {
	var hits []types.TopicMarker
	for _, ln := range lines {
		for _, m := range markers {
			if m == "" {
				continue
			}
			if strings.Contains(ln.Text, m) {
				hits = append(hits, types.TopicMarker{Time: ln.Start, Marker: m, Text: ln.Text})
				break
			}
		}
	}
	return hits
}
