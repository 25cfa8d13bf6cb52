package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"kiricut/internal/types"
)

// ParseSubtitles converts a subtitle artifact into an ordered SubtitleTrack.
// Cues with unusable timing or no text are skipped with a diagnostic.
func ParseSubtitles(data []byte) (types.SubtitleTrack, []types.Diagnostic, error) {
	var f types.SubtitleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return types.SubtitleTrack{}, nil, fmt.Errorf("parse subtitle file: %w", err)
	}

	track := types.SubtitleTrack{
		Language:    f.Language,
		IsGenerated: f.IsGenerated,
		Lines:       make([]types.SubtitleLine, 0, len(f.Subtitles)),
	}
	var diags []types.Diagnostic
	for i, cue := range f.Subtitles {
		switch {
		case cue.Start < 0:
			diags = append(diags, types.Diagnostic{Record: i, Reason: fmt.Sprintf("subtitle cue: negative start %.3f", cue.Start)})
			continue
		case cue.Duration <= 0:
			diags = append(diags, types.Diagnostic{Record: i, Reason: fmt.Sprintf("subtitle cue: non-positive duration %.3f", cue.Duration)})
			continue
		}
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			diags = append(diags, types.Diagnostic{Record: i, Reason: "subtitle cue: empty text"})
			continue
		}
		track.Lines = append(track.Lines, types.SubtitleLine{
			Start: cue.Start,
			End:   cue.Start + cue.Duration,
			Text:  text,
		})
	}

	sort.SliceStable(track.Lines, func(a, b int) bool { return track.Lines[a].Start < track.Lines[b].Start })
	return track, diags, nil
}
