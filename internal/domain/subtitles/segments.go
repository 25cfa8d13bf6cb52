package subtitles

import (
	"fmt"
	"strings"

	"kiricut/internal/types"
)

type Options struct {
	// SilenceGapSec splits segments where the pause between consecutive
	// lines exceeds it.
	SilenceGapSec float64
	// MaxSegmentSec splits segments that would otherwise grow beyond it.
	MaxSegmentSec float64
}

func (o Options) Validate() error {
	if o.SilenceGapSec < 0 {
		return fmt.Errorf("silence gap must be >= 0 seconds")
	}
	if o.MaxSegmentSec <= 0 {
		return fmt.Errorf("max segment length must be > 0 seconds")
	}
	return nil
}

// Segment groups ordered subtitle lines into topic segments. A new segment
// starts when the silence before a line exceeds the configured gap, or when
// appending the line would stretch the segment past the maximum length.
func Segment(lines []types.SubtitleLine, opts Options) ([]types.TopicSegment, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	var segments []types.TopicSegment
	cur := open(lines[0])
	for _, ln := range lines[1:] {
		gap := ln.Start - cur.End
		if gap > opts.SilenceGapSec || ln.End-cur.Start > opts.MaxSegmentSec {
			segments = append(segments, cur)
			cur = open(ln)
			continue
		}
		if ln.End > cur.End {
			cur.End = ln.End
		}
		cur.Text += " " + ln.Text
		cur.LineCount++
	}
	return append(segments, cur), nil
}

func open(ln types.SubtitleLine) types.TopicSegment {
	return types.TopicSegment{
		Start:     ln.Start,
		End:       ln.End,
		Text:      strings.TrimSpace(ln.Text),
		LineCount: 1,
	}
}
