package subtitles

import (
	"strings"
	"testing"

	"kiricut/internal/types"
)

func line(start, end float64, text string) types.SubtitleLine {
	return types.SubtitleLine{Start: start, End: end, Text: text}
}

// contiguous returns n back-to-back one-second lines starting at base.
func contiguous(base float64, n int, text string) []types.SubtitleLine {
	lines := make([]types.SubtitleLine, n)
	for i := range lines {
		lines[i] = line(base+float64(i), base+float64(i)+1, text)
	}
	return lines
}

func defaultSegOpts() Options {
	return Options{SilenceGapSec: 2, MaxSegmentSec: 180}
}

func TestSegment_SplitsOnSilence(t *testing.T) {
	t.Parallel()
	lines := append(contiguous(0, 9, "talk"), line(40, 45, "new topic"))

	segments, err := Segment(lines, defaultSegOpts())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}
	first, second := segments[0], segments[1]
	if first.Start != 0 || first.End != 9 || first.LineCount != 9 {
		t.Errorf("first segment = %+v, want [0,9] with 9 lines", first)
	}
	if second.Start != 40 || second.End != 45 || second.LineCount != 1 {
		t.Errorf("second segment = %+v, want [40,45] with 1 line", second)
	}
}

func TestSegment_GapAtThresholdDoesNotSplit(t *testing.T) {
	t.Parallel()
	lines := []types.SubtitleLine{
		line(0, 1, "a"),
		line(3, 4, "b"),    // gap exactly 2
		line(6.5, 7, "c"),  // gap 2.5
	}

	segments, err := Segment(lines, defaultSegOpts())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}
	if segments[0].LineCount != 2 || segments[0].End != 4 {
		t.Errorf("first segment = %+v, want lines a and b", segments[0])
	}
	if segments[1].Start != 6.5 {
		t.Errorf("second segment = %+v, want start 6.5", segments[1])
	}
}

func TestSegment_SplitsOnMaxLength(t *testing.T) {
	t.Parallel()
	opts := Options{SilenceGapSec: 2, MaxSegmentSec: 5}
	lines := contiguous(0, 12, "x")

	segments, err := Segment(lines, opts)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(segments))
	}
	for i, seg := range segments {
		if got := seg.End - seg.Start; got > opts.MaxSegmentSec {
			t.Errorf("segment %d spans %v, over the %v max", i, got, opts.MaxSegmentSec)
		}
	}
	if segments[1].Start != 5 || segments[2].Start != 10 {
		t.Errorf("segment starts = %v, %v, want 5 and 10", segments[1].Start, segments[2].Start)
	}
}

func TestSegment_JoinsTextAndKeepsMaxEnd(t *testing.T) {
	t.Parallel()
	lines := []types.SubtitleLine{
		line(0, 5, "first part"),
		line(1, 3, "overlapping"), // fully inside the previous line
		line(5, 6, "tail"),
	}

	segments, err := Segment(lines, defaultSegOpts())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(segments))
	}
	seg := segments[0]
	if seg.Text != "first part overlapping tail" {
		t.Errorf("text = %q", seg.Text)
	}
	if seg.End != 6 || seg.LineCount != 3 {
		t.Errorf("segment = %+v, want end 6 with 3 lines", seg)
	}
}

func TestSegment_Empty(t *testing.T) {
	t.Parallel()
	segments, err := Segment(nil, defaultSegOpts())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if segments != nil {
		t.Fatalf("segments = %+v, want nil", segments)
	}
}

func TestSegmentOptionsValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "valid", opts: Options{SilenceGapSec: 2, MaxSegmentSec: 180}},
		{name: "zero gap allowed", opts: Options{SilenceGapSec: 0, MaxSegmentSec: 180}},
		{name: "negative gap", opts: Options{SilenceGapSec: -1, MaxSegmentSec: 180}, wantErr: "silence gap"},
		{name: "zero max length", opts: Options{SilenceGapSec: 2, MaxSegmentSec: 0}, wantErr: "max segment length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate: %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestScanTopicMarkers(t *testing.T) {
	t.Parallel()
	lines := []types.SubtitleLine{
		line(0, 2, "こんにちは"),
		line(10, 12, "それでは始めます"),
		line(20, 22, "次は、まず準備から"), // two markers, only the first counts
		line(30, 32, "ありがとうございました"),
	}

	hits := ScanTopicMarkers(lines, DefaultTopicMarkers())
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want 2", hits)
	}
	if hits[0].Time != 10 || hits[0].Marker != "それでは" {
		t.Errorf("first hit = %+v", hits[0])
	}
	if hits[1].Time != 20 || hits[1].Marker != "次は" {
		t.Errorf("second hit = %+v", hits[1])
	}
	if hits[1].Text != "次は、まず準備から" {
		t.Errorf("second hit text = %q", hits[1].Text)
	}
}

func TestScanTopicMarkers_SkipsEmptyMarker(t *testing.T) {
	t.Parallel()
	lines := []types.SubtitleLine{line(0, 1, "anything")}
	if hits := ScanTopicMarkers(lines, []string{"", "any"}); len(hits) != 1 || hits[0].Marker != "any" {
		t.Fatalf("hits = %+v, want single hit on %q", hits, "any")
	}
}

func TestStats(t *testing.T) {
	t.Parallel()
	track := types.SubtitleTrack{Lines: []types.SubtitleLine{
		line(0, 10, "長い行"), // overlap ends after the later line
		line(2, 4, "はい"),
	}}

	st := Stats(track)
	if st.TotalLines != 2 {
		t.Errorf("TotalLines = %d, want 2", st.TotalLines)
	}
	if st.TotalChars != 5 {
		t.Errorf("TotalChars = %d, want 5 runes", st.TotalChars)
	}
	if st.Duration != 10 {
		t.Errorf("Duration = %v, want 10", st.Duration)
	}

	if st := Stats(types.SubtitleTrack{}); st.TotalLines != 0 || st.Duration != 0 {
		t.Errorf("empty track stats = %+v, want zero value", st)
	}
}
