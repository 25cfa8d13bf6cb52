package subtitles

import (
	"unicode/utf8"

	"kiricut/internal/types"
)

// Stats summarizes a subtitle track. Duration is the latest line end, which
// can differ from the last line's end when lines overlap.
func Stats(track types.SubtitleTrack) types.SubtitleStats {
	st := types.SubtitleStats{TotalLines: len(track.Lines)}
	for _, ln := range track.Lines {
		st.TotalChars += utf8.RuneCountInString(ln.Text)
		if ln.End > st.Duration {
			st.Duration = ln.End
		}
	}
	return st
}
