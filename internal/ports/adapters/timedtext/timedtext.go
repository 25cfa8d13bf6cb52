package timedtext

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"kiricut/internal/types"
)

const defaultTimeout = 30 * time.Second

type Adapter struct {
	baseURL string
	langs   []string
	client  *http.Client
}

func New(baseURL string, langs []string, timeout time.Duration) *Adapter {
	baseURL = normalizeBaseURL(baseURL)
	if len(langs) == 0 {
		langs = []string{"ja", "en"}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{baseURL: baseURL, langs: langs, client: &http.Client{Timeout: timeout}}
}

// FetchSubtitles queries the timedtext endpoint for each configured
// language, manual tracks first and auto-generated ones second, and writes
// the first track found to destPath.
func (a *Adapter) FetchSubtitles(ctx context.Context, videoID, destPath string) error {
	for _, kind := range []string{"", "asr"} {
		for _, lang := range a.langs {
			track, ok, err := a.fetchTrack(ctx, videoID, lang, kind)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			track.VideoID = videoID
			b, err := json.MarshalIndent(track, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal subtitle artifact: %w", err)
			}
			if err := os.WriteFile(destPath, b, 0o644); err != nil {
				return fmt.Errorf("write subtitle artifact: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("no subtitles available for %s (tried %s)", videoID, strings.Join(a.langs, ", "))
}

// json3 track shape served by the endpoint.
type json3Doc struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (a *Adapter) fetchTrack(ctx context.Context, videoID, lang, kind string) (types.SubtitleFile, bool, error) {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", lang)
	q.Set("fmt", "json3")
	if kind != "" {
		q.Set("kind", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/timedtext?"+q.Encode(), nil)
	if err != nil {
		return types.SubtitleFile{}, false, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return types.SubtitleFile{}, false, fmt.Errorf("timedtext request for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	// Missing tracks surface as a non-200 status or an empty 200 body; both
	// mean "try the next language", not failure.
	if resp.StatusCode != http.StatusOK {
		return types.SubtitleFile{}, false, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.SubtitleFile{}, false, fmt.Errorf("read timedtext response: %w", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return types.SubtitleFile{}, false, nil
	}

	var doc json3Doc
	if err := json.Unmarshal(body, &doc); err != nil {
		return types.SubtitleFile{}, false, fmt.Errorf("parse timedtext response: %w", err)
	}

	f := types.SubtitleFile{Language: lang, IsGenerated: kind == "asr"}
	for _, ev := range doc.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		f.Subtitles = append(f.Subtitles, types.SubtitleCue{
			Text:     text,
			Start:    float64(ev.TStartMs) / 1000,
			Duration: float64(ev.DDurationMs) / 1000,
		})
	}
	if len(f.Subtitles) == 0 {
		return types.SubtitleFile{}, false, nil
	}
	return f, true, nil
}
