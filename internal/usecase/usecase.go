package usecase

import (
	"context"
	"errors"
	"fmt"

	"kiricut/internal/domain/clips"
	"kiricut/internal/domain/comments"
	"kiricut/internal/domain/subtitles"
	"kiricut/internal/parser"
	"kiricut/internal/ports"
	"kiricut/internal/store"
	"kiricut/internal/types"
)

// ErrNoData reports that a video has no cached artifacts to analyze.
var ErrNoData = errors.New("no cached artifacts")

type Deps struct {
	Chat      ports.ChatFetcher
	Subtitles ports.SubtitleFetcher
	Store     *store.Store
	Logf      func(format string, args ...any)
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logf == nil {
		d.Logf = func(string, ...any) {}
	}
	return Usecase{d: d}
}

type FetchInput struct {
	VideoID   string
	Chat      bool
	Subtitles bool
	// Force refetches artifacts that are already cached.
	Force bool
}

// ArtifactResult is the fetch outcome for one artifact.
type ArtifactResult struct {
	Requested bool
	Fetched   bool
	Cached    bool
	Err       error
}

type FetchResult struct {
	Chat      ArtifactResult
	Subtitles ArtifactResult
}

// Fetch retrieves the requested artifacts for a video, reusing cached files
// unless forced. Requesting neither artifact means both. A partial failure
// is not an error: analysis runs on whatever is available, so Fetch fails
// only when every requested artifact does.
func (u Usecase) Fetch(ctx context.Context, in FetchInput) (FetchResult, error) {
	if !in.Chat && !in.Subtitles {
		in.Chat, in.Subtitles = true, true
	}

	var res FetchResult
	if err := u.d.Store.EnsureDir(); err != nil {
		return res, err
	}

	if in.Chat {
		res.Chat = u.fetchArtifact(in.VideoID, in.Force, "chat replay",
			u.d.Store.ChatPath, u.d.Store.HasChat,
			func(path string) error { return u.d.Chat.FetchChat(ctx, in.VideoID, path) })
	}
	if in.Subtitles {
		res.Subtitles = u.fetchArtifact(in.VideoID, in.Force, "subtitles",
			u.d.Store.SubtitlePath, u.d.Store.HasSubtitles,
			func(path string) error { return u.d.Subtitles.FetchSubtitles(ctx, in.VideoID, path) })
	}

	var errs []error
	requested := 0
	for _, ar := range []ArtifactResult{res.Chat, res.Subtitles} {
		if !ar.Requested {
			continue
		}
		requested++
		if ar.Err != nil {
			errs = append(errs, ar.Err)
		}
	}
	if len(errs) == requested {
		return res, fmt.Errorf("fetch %s: %w", in.VideoID, errors.Join(errs...))
	}
	return res, nil
}

func (u Usecase) fetchArtifact(
	videoID string,
	force bool,
	name string,
	pathFn func(string) (string, error),
	hasFn func(string) bool,
	fetch func(path string) error,
) ArtifactResult {
	res := ArtifactResult{Requested: true}
	path, err := pathFn(videoID)
	if err != nil {
		res.Err = err
		return res
	}
	if !force && hasFn(videoID) {
		u.d.Logf("%s already cached for %s", name, videoID)
		res.Cached = true
		return res
	}
	u.d.Logf("fetching %s for %s", name, videoID)
	if err := fetch(path); err != nil {
		u.d.Logf("%s fetch failed for %s: %v", name, videoID, err)
		res.Err = err
		return res
	}
	u.d.Logf("%s stored for %s", name, videoID)
	res.Fetched = true
	return res
}

type AnalyzeInput struct {
	VideoID string
	Params  Params
}

// Analyze runs the full analysis pass over a video's cached artifacts:
// parse, window the chat, segment the subtitles, generate candidates. A
// missing or unreadable artifact degrades the run to the remaining signal;
// only configuration errors or a video with no usable data at all fail.
func (u Usecase) Analyze(ctx context.Context, in AnalyzeInput) (types.Report, error) {
	_ = ctx
	if err := in.Params.Validate(); err != nil {
		return types.Report{}, fmt.Errorf("config: %w", err)
	}

	report := types.Report{VideoID: in.VideoID}
	var diags []types.Diagnostic

	events, chatDiags, chatErr := u.loadChat(in.VideoID)
	diags = append(diags, chatDiags...)
	if chatErr != nil && !errors.Is(chatErr, ErrNoData) {
		diags = append(diags, types.Diagnostic{Record: -1, Reason: fmt.Sprintf("chat artifact unusable: %v", chatErr)})
	}
	track, subDiags, subErr := u.loadSubtitles(in.VideoID)
	diags = append(diags, subDiags...)
	if subErr != nil && !errors.Is(subErr, ErrNoData) {
		diags = append(diags, types.Diagnostic{Record: -1, Reason: fmt.Sprintf("subtitle artifact unusable: %v", subErr)})
	}

	report.HasChat = chatErr == nil
	report.HasSubtitles = subErr == nil
	if !report.HasChat && !report.HasSubtitles {
		if !errors.Is(chatErr, ErrNoData) {
			return types.Report{}, fmt.Errorf("analyze %s: %w", in.VideoID, chatErr)
		}
		if !errors.Is(subErr, ErrNoData) {
			return types.Report{}, fmt.Errorf("analyze %s: %w", in.VideoID, subErr)
		}
		return types.Report{}, fmt.Errorf("%w for %s", ErrNoData, in.VideoID)
	}

	subStats := subtitles.Stats(track)
	duration := subStats.Duration
	if n := len(events); n > 0 && events[n-1].Timestamp > duration {
		duration = events[n-1].Timestamp
	}
	if duration < 0 {
		duration = 0
	}
	report.Duration = duration

	commentRes, err := comments.Analyze(events, duration, in.Params.commentOptions())
	if err != nil {
		return types.Report{}, err
	}
	report.Windows = commentRes.Windows
	diags = append(diags, commentRes.Diagnostics...)

	segments, err := subtitles.Segment(track.Lines, in.Params.segmentOptions())
	if err != nil {
		return types.Report{}, err
	}
	report.Segments = segments

	candidates, err := clips.Generate(commentRes.Windows, segments, duration, in.Params.clipOptions())
	if err != nil {
		return types.Report{}, err
	}
	for i := range candidates {
		candidates[i].URL = parser.WatchURL(in.VideoID, candidates[i].Start)
	}
	report.Candidates = candidates

	report.ChatStats = comments.Stats(events)
	report.SubtitleStats = subStats
	report.TopAuthors = comments.TopAuthors(events, in.Params.TopAuthors)
	report.TopicMarkers = subtitles.ScanTopicMarkers(track.Lines, in.Params.TopicMarkers)
	report.SubtitleLanguage = track.Language
	report.SubtitleGenerated = track.IsGenerated
	report.Diagnostics = diags

	u.d.Logf("analyzed %s: %d events, %d lines, %d windows, %d candidates",
		in.VideoID, len(events), len(track.Lines), len(report.Windows), len(report.Candidates))
	return report, nil
}

// loadChat reads and parses the cached chat artifact. ErrNoData means the
// artifact simply is not there; other errors mean it exists but is
// unusable.
func (u Usecase) loadChat(videoID string) ([]types.ChatEvent, []types.Diagnostic, error) {
	if !u.d.Store.HasChat(videoID) {
		return nil, nil, ErrNoData
	}
	raw, err := u.d.Store.ReadChat(videoID)
	if err != nil {
		return nil, nil, err
	}
	events, diags, err := parser.ParseChat(raw)
	if err != nil {
		u.d.Logf("chat artifact unusable for %s: %v", videoID, err)
		return nil, nil, err
	}
	return events, diags, nil
}

func (u Usecase) loadSubtitles(videoID string) (types.SubtitleTrack, []types.Diagnostic, error) {
	if !u.d.Store.HasSubtitles(videoID) {
		return types.SubtitleTrack{}, nil, ErrNoData
	}
	raw, err := u.d.Store.ReadSubtitles(videoID)
	if err != nil {
		return types.SubtitleTrack{}, nil, err
	}
	track, diags, err := parser.ParseSubtitles(raw)
	if err != nil {
		u.d.Logf("subtitle artifact unusable for %s: %v", videoID, err)
		return types.SubtitleTrack{}, nil, err
	}
	return track, diags, nil
}
