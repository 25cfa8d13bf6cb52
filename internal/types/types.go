package types

// ChatEvent is one chat-replay message, timestamped in seconds from
// stream start. Immutable once parsed.
type ChatEvent struct {
	Timestamp float64 `json:"timestamp"`
	Author    string  `json:"author"`
	Message   string  `json:"message"`
}

// SubtitleLine is one raw subtitle cue.
type SubtitleLine struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SubtitleTrack is a parsed subtitle artifact with its source metadata.
type SubtitleTrack struct {
	Language    string         `json:"language"`
	IsGenerated bool           `json:"is_generated"`
	Lines       []SubtitleLine `json:"lines"`
}

// TimeWindow is one fixed-width bucket of chat activity. Windows are
// contiguous, non-overlapping and tile [0, duration]; the last window may
// be truncated at the stream end.
type TimeWindow struct {
	Start         float64        `json:"start"`
	End           float64        `json:"end"`
	EventCount    int            `json:"event_count"`
	KeywordCounts map[string]int `json:"keyword_counts,omitempty"`
	Score         float64        `json:"score"`
	HighActivity  bool           `json:"high_activity"`
}

// TopicSegment is a contiguous span of subtitle text treated as one
// discourse unit.
type TopicSegment struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Text      string  `json:"text"`
	LineCount int     `json:"line_count"`
}

// ClipCandidate is a proposed highlight interval. Candidates are ranked by
// score descending, ties broken by earlier start.
type ClipCandidate struct {
	Start   float64  `json:"start"`
	End     float64  `json:"end"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
	URL     string   `json:"url,omitempty"`
}

// Diagnostic records a skipped or clamped input record. Diagnostics are
// collected alongside results, never raised as errors. Record is the input
// index, or -1 for artifact-level problems.
type Diagnostic struct {
	Record int    `json:"record"`
	Reason string `json:"reason"`
}

type ChatStats struct {
	TotalEvents     int     `json:"total_events"`
	UniqueAuthors   int     `json:"unique_authors"`
	Duration        float64 `json:"duration"`
	EventsPerMinute float64 `json:"events_per_minute"`
}

type SubtitleStats struct {
	TotalLines int     `json:"total_lines"`
	TotalChars int     `json:"total_chars"`
	Duration   float64 `json:"duration"`
}

// AuthorCount is one row of the top-commenters ranking.
type AuthorCount struct {
	Author string `json:"author"`
	Events int    `json:"events"`
}

// TopicMarker is a discourse-marker hit in the subtitle text, a hint that
// the streamer changed topics.
type TopicMarker struct {
	Time   float64 `json:"time"`
	Marker string  `json:"marker"`
	Text   string  `json:"text"`
}

// Report is the full analysis output handed to the UI and CLI renderers:
// plain structured data, no rendering logic.
type Report struct {
	VideoID           string          `json:"video_id"`
	Duration          float64         `json:"duration"`
	HasChat           bool            `json:"has_chat"`
	HasSubtitles      bool            `json:"has_subtitles"`
	SubtitleLanguage  string          `json:"subtitle_language,omitempty"`
	SubtitleGenerated bool            `json:"subtitle_generated,omitempty"`
	Windows           []TimeWindow    `json:"windows"`
	Segments          []TopicSegment  `json:"segments"`
	Candidates        []ClipCandidate `json:"candidates"`
	ChatStats         ChatStats       `json:"chat_stats"`
	SubtitleStats     SubtitleStats   `json:"subtitle_stats"`
	TopAuthors        []AuthorCount   `json:"top_authors,omitempty"`
	TopicMarkers      []TopicMarker   `json:"topic_markers,omitempty"`
	Diagnostics       []Diagnostic    `json:"diagnostics,omitempty"`
}

// SubtitleFile is the on-disk shape of a subtitle artifact. Fetchers and
// the mock generator write it; the parser reads it.
type SubtitleFile struct {
	VideoID     string        `json:"video_id"`
	Language    string        `json:"language"`
	IsGenerated bool          `json:"is_generated"`
	Subtitles   []SubtitleCue `json:"subtitles"`
}

// SubtitleCue matches the fetch source's {text, start, duration} records.
type SubtitleCue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}
