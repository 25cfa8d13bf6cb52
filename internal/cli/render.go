package cli

import (
	"fmt"
	"io"
	"strings"

	"kiricut/internal/parser"
	"kiricut/internal/types"
	"kiricut/internal/usecase"
)

const maxDiagnosticsShown = 10

func printArtifactResult(w io.Writer, name string, r usecase.ArtifactResult) {
	switch {
	case !r.Requested:
	case r.Err != nil:
		fmt.Fprintf(w, "%-12s failed: %v\n", name, r.Err)
	case r.Cached:
		fmt.Fprintf(w, "%-12s cached\n", name)
	default:
		fmt.Fprintf(w, "%-12s fetched\n", name)
	}
}

func printReport(w io.Writer, r types.Report) {
	fmt.Fprintf(w, "video %s  duration %s\n", r.VideoID, parser.FormatTimestamp(r.Duration))

	if r.HasChat {
		cs := r.ChatStats
		fmt.Fprintf(w, "chat: %d comments from %d authors (%.1f/min)\n",
			cs.TotalEvents, cs.UniqueAuthors, cs.EventsPerMinute)
	} else {
		fmt.Fprintln(w, "chat: no data")
	}

	if r.HasSubtitles {
		kind := "manual"
		if r.SubtitleGenerated {
			kind = "auto-generated"
		}
		fmt.Fprintf(w, "subtitles: %s (%s), %d lines, %d chars\n",
			r.SubtitleLanguage, kind, r.SubtitleStats.TotalLines, r.SubtitleStats.TotalChars)
	} else {
		fmt.Fprintln(w, "subtitles: no data")
	}

	flagged := 0
	for _, win := range r.Windows {
		if win.HighActivity {
			flagged++
		}
	}
	fmt.Fprintf(w, "windows: %d high-activity of %d\n", flagged, len(r.Windows))

	fmt.Fprintf(w, "\nclip candidates (%d):\n", len(r.Candidates))
	for i, c := range r.Candidates {
		fmt.Fprintf(w, "%3d. %s - %s  (%3.0fs)  score %.2f  %s\n",
			i+1, parser.FormatTimestamp(c.Start), parser.FormatTimestamp(c.End),
			c.End-c.Start, c.Score, strings.Join(c.Reasons, ", "))
		if c.URL != "" {
			fmt.Fprintf(w, "     %s\n", c.URL)
		}
	}

	if len(r.TopicMarkers) > 0 {
		fmt.Fprintf(w, "\ntopic markers (%d):\n", len(r.TopicMarkers))
		for _, m := range r.TopicMarkers {
			fmt.Fprintf(w, "  %s  %s  %s\n", parser.FormatTimestamp(m.Time), m.Marker, m.Text)
		}
	}

	if len(r.TopAuthors) > 0 {
		fmt.Fprintln(w, "\ntop commenters:")
		for _, a := range r.TopAuthors {
			fmt.Fprintf(w, "  %5d  %s\n", a.Events, a.Author)
		}
	}

	if n := len(r.Diagnostics); n > 0 {
		fmt.Fprintf(w, "\n%d records skipped or clamped:\n", n)
		for i, d := range r.Diagnostics {
			if i == maxDiagnosticsShown {
				fmt.Fprintf(w, "  ... and %d more\n", n-maxDiagnosticsShown)
				break
			}
			fmt.Fprintf(w, "  [%d] %s\n", d.Record, d.Reason)
		}
	}
}
