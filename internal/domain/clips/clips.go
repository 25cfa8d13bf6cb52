package clips

import (
	"fmt"
	"sort"

	"kiricut/internal/types"
)

// Reasons attached to candidates, naming the signal that produced them.
const (
	ReasonCommentSpike = "comment spike"
	ReasonKeywords     = "keyword reactions"
	ReasonTopicAligned = "topic alignment"
)

type Options struct {
	// MinClipSec pads shorter candidates toward this length.
	MinClipSec float64
	// MaxClipSec trims merged candidates down to this length.
	MaxClipSec float64
	// MaxCandidates caps the returned list. 0 means unlimited.
	MaxCandidates int
}

func (o Options) Validate() error {
	if o.MinClipSec <= 0 {
		return fmt.Errorf("min clip length must be > 0 seconds")
	}
	if o.MaxClipSec < o.MinClipSec {
		return fmt.Errorf("max clip length must be >= min clip length")
	}
	if o.MaxCandidates < 0 {
		return fmt.Errorf("max candidates must be >= 0")
	}
	return nil
}

// Generate turns high-activity windows into a ranked candidate list. Each
// flagged window becomes an interval, snapped to a topic segment when one
// covers more than half of the window, padded toward the minimum clip
// length, then overlapping intervals are merged with their scores summed.
// The result is sorted by score descending with start-time tie-break.
func Generate(windows []types.TimeWindow, segments []types.TopicSegment, duration float64, opts Options) ([]types.ClipCandidate, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if duration < 0 {
		return nil, fmt.Errorf("duration must be >= 0 seconds")
	}

	var raw []types.ClipCandidate
	for _, w := range windows {
		if !w.HighActivity {
			continue
		}
		c := types.ClipCandidate{
			Start:   w.Start,
			End:     w.End,
			Score:   w.Score,
			Reasons: []string{ReasonCommentSpike},
		}
		if keywordHits(w) > 0 {
			c.Reasons = append(c.Reasons, ReasonKeywords)
		}
		if seg, ok := snap(w, segments); ok {
			c.Start, c.End = seg.Start, seg.End
			c.Reasons = append(c.Reasons, ReasonTopicAligned)
		}
		pad(&c, opts.MinClipSec, duration)
		raw = append(raw, c)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	merged := merge(raw)
	for i := range merged {
		if merged[i].End-merged[i].Start > opts.MaxClipSec {
			merged[i].End = merged[i].Start + opts.MaxClipSec
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		if merged[a].Score != merged[b].Score {
			return merged[a].Score > merged[b].Score
		}
		return merged[a].Start < merged[b].Start
	})
	if opts.MaxCandidates > 0 && len(merged) > opts.MaxCandidates {
		merged = merged[:opts.MaxCandidates]
	}
	return merged, nil
}

// snap returns the topic segment covering more than half of the window.
// Segments are disjoint, so at most one can qualify.
func snap(w types.TimeWindow, segments []types.TopicSegment) (types.TopicSegment, bool) {
	half := (w.End - w.Start) / 2
	for _, seg := range segments {
		if overlap(w.Start, w.End, seg.Start, seg.End) > half {
			return seg, true
		}
	}
	return types.TopicSegment{}, false
}

func overlap(aStart, aEnd, bStart, bEnd float64) float64 {
	start, end := aStart, aEnd
	if bStart > start {
		start = bStart
	}
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

// pad widens a short candidate symmetrically toward the minimum clip
// length, clamped to the stream bounds.
func pad(c *types.ClipCandidate, minLen, duration float64) {
	length := c.End - c.Start
	if length >= minLen {
		return
	}
	buffer := (minLen - length) / 2
	c.Start -= buffer
	c.End += buffer
	if c.Start < 0 {
		c.Start = 0
	}
	if c.End > duration {
		c.End = duration
	}
}

// merge folds overlapping or touching candidates into one, summing scores.
func merge(cands []types.ClipCandidate) []types.ClipCandidate {
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].Start < cands[b].Start })
	out := []types.ClipCandidate{cands[0]}
	for _, c := range cands[1:] {
		last := &out[len(out)-1]
		if c.Start > last.End {
			out = append(out, c)
			continue
		}
		if c.End > last.End {
			last.End = c.End
		}
		last.Score += c.Score
		last.Reasons = unionReasons(last.Reasons, c.Reasons)
	}
	return out
}

func unionReasons(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	for _, r := range a {
		seen[r] = struct{}{}
	}
	for _, r := range b {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			a = append(a, r)
		}
	}
	return a
}

func keywordHits(w types.TimeWindow) int {
	total := 0
	for _, c := range w.KeywordCounts {
		total += c
	}
	return total
}
