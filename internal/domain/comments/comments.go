package comments

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"kiricut/internal/types"
)

type Options struct {
	// WindowSec is the bucket width in seconds.
	WindowSec float64
	// Keywords are reaction patterns counted per window. Each compiles as a
	// regular expression; invalid patterns degrade to literal substring
	// matches. An event counts at most once per keyword.
	Keywords []string
	// EventWeight and KeywordWeight blend the two normalized signals into
	// the window score.
	EventWeight   float64
	KeywordWeight float64
	// Percentile of window scores above which a window is flagged as high
	// activity. Range [0, 100].
	Percentile float64
}

func (o Options) Validate() error {
	if o.WindowSec <= 0 {
		return fmt.Errorf("window width must be > 0 seconds")
	}
	if o.EventWeight < 0 || o.KeywordWeight < 0 {
		return fmt.Errorf("score weights must be >= 0")
	}
	if o.EventWeight == 0 && o.KeywordWeight == 0 {
		return fmt.Errorf("at least one score weight must be > 0")
	}
	if o.KeywordWeight > 0 && len(trimKeywords(o.Keywords)) == 0 {
		return fmt.Errorf("keywords are required when keyword weight is > 0")
	}
	if o.Percentile < 0 || o.Percentile > 100 {
		return fmt.Errorf("percentile must be within [0, 100]")
	}
	return nil
}

type Result struct {
	Windows []types.TimeWindow
	// Diagnostics records events clamped into a boundary window or dropped
	// because no window exists for them.
	Diagnostics []types.Diagnostic
}

// Analyze buckets events into ceil(duration/window) contiguous windows
// tiling [0, duration], counts events and keyword matches per window, and
// scores each window. Events outside [0, duration] are clamped to the
// nearest boundary window with a diagnostic. Empty input yields all-zero
// windows.
func Analyze(events []types.ChatEvent, duration float64, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if duration < 0 {
		return Result{}, fmt.Errorf("duration must be >= 0 seconds")
	}

	matchers := compileKeywords(opts.Keywords)
	windows := buildWindows(duration, opts.WindowSec, matchers)

	var diags []types.Diagnostic
	for i, ev := range events {
		idx, diag := windowIndex(ev.Timestamp, duration, opts.WindowSec, len(windows))
		if diag != "" {
			diags = append(diags, types.Diagnostic{Record: i, Reason: diag})
		}
		if idx < 0 {
			continue
		}
		w := &windows[idx]
		w.EventCount++
		for _, m := range matchers {
			if m.matches(ev.Message) {
				w.KeywordCounts[m.keyword]++
			}
		}
	}

	score(windows, opts)
	flagHighActivity(windows, opts.Percentile)
	return Result{Windows: windows, Diagnostics: diags}, nil
}

func buildWindows(duration, width float64, matchers []keywordMatcher) []types.TimeWindow {
	n := int(math.Ceil(duration / width))
	windows := make([]types.TimeWindow, n)
	for i := range windows {
		start := float64(i) * width
		end := start + width
		if end > duration {
			end = duration
		}
		counts := make(map[string]int, len(matchers))
		for _, m := range matchers {
			counts[m.keyword] = 0
		}
		windows[i] = types.TimeWindow{Start: start, End: end, KeywordCounts: counts}
	}
	return windows
}

// windowIndex returns the target window for a timestamp, clamping
// out-of-range events to the boundary windows. A negative index means the
// event has no window at all (zero duration).
func windowIndex(ts, duration, width float64, n int) (int, string) {
	if n == 0 {
		return -1, fmt.Sprintf("event at %.3fs outside zero-length timeline, dropped", ts)
	}
	switch {
	case ts < 0:
		return 0, fmt.Sprintf("event at %.3fs before stream start, clamped to first window", ts)
	case ts > duration:
		return n - 1, fmt.Sprintf("event at %.3fs after declared end %.3fs, clamped to last window", ts, duration)
	}
	idx := int(ts / width)
	if idx >= n {
		idx = n - 1
	}
	return idx, ""
}

// score blends max-normalized event count and keyword hits per the
// configured weights, keeping every score in [0, 1].
func score(windows []types.TimeWindow, opts Options) {
	maxEvents, maxKeywords := 0, 0
	for _, w := range windows {
		if w.EventCount > maxEvents {
			maxEvents = w.EventCount
		}
		if k := keywordHits(w); k > maxKeywords {
			maxKeywords = k
		}
	}

	denom := opts.EventWeight + opts.KeywordWeight
	for i := range windows {
		var eventNorm, keywordNorm float64
		if maxEvents > 0 {
			eventNorm = float64(windows[i].EventCount) / float64(maxEvents)
		}
		if maxKeywords > 0 {
			keywordNorm = float64(keywordHits(windows[i])) / float64(maxKeywords)
		}
		windows[i].Score = (opts.EventWeight*eventNorm + opts.KeywordWeight*keywordNorm) / denom
	}
}

// flagHighActivity marks windows scoring at or above the requested
// percentile. Windows with no events are never flagged, so a silent stream
// does not produce candidates.
func flagHighActivity(windows []types.TimeWindow, p float64) {
	if len(windows) == 0 {
		return
	}
	scores := make([]float64, len(windows))
	for i, w := range windows {
		scores[i] = w.Score
	}
	threshold := Percentile(scores, p)
	for i := range windows {
		windows[i].HighActivity = windows[i].Score >= threshold && windows[i].EventCount > 0
	}
}

func keywordHits(w types.TimeWindow) int {
	total := 0
	for _, c := range w.KeywordCounts {
		total += c
	}
	return total
}

// Percentile returns the p-th percentile of values using linear
// interpolation between closest ranks.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	if p <= 0 {
		return s[0]
	}
	if p >= 100 {
		return s[len(s)-1]
	}
	rank := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return s[lo]
	}
	frac := rank - float64(lo)
	return s[lo]*(1-frac) + s[hi]*frac
}

type keywordMatcher struct {
	keyword string
	re      *regexp.Regexp // nil means literal substring match
}

func (m keywordMatcher) matches(message string) bool {
	if m.re != nil {
		return m.re.MatchString(message)
	}
	return strings.Contains(message, m.keyword)
}

func compileKeywords(keywords []string) []keywordMatcher {
	trimmed := trimKeywords(keywords)
	out := make([]keywordMatcher, 0, len(trimmed))
	for _, k := range trimmed {
		re, err := regexp.Compile(k)
		if err != nil {
			out = append(out, keywordMatcher{keyword: k})
			continue
		}
		out = append(out, keywordMatcher{keyword: k, re: re})
	}
	return out
}

func trimKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
