package usecase

import (
	"fmt"

	"kiricut/internal/domain/clips"
	"kiricut/internal/domain/comments"
	"kiricut/internal/domain/subtitles"
)

// Params is the full analysis configuration. Zero values are not usable;
// start from DefaultParams and override.
type Params struct {
	WindowSec     float64
	Keywords      []string
	EventWeight   float64
	KeywordWeight float64
	Percentile    float64
	SilenceGapSec float64
	MaxSegmentSec float64
	MinClipSec    float64
	MaxClipSec    float64
	MaxCandidates int
	TopAuthors    int
	TopicMarkers  []string
}

// DefaultParams is tuned for Japanese live streams: w-runs and 草 as
// reaction keywords, 10 s windows, clips between 30 and 180 s.
func DefaultParams() Params {
	return Params{
		WindowSec:     10,
		Keywords:      []string{"w+", "草", "笑", "！+", "？+", "すごい", "やばい"},
		EventWeight:   1,
		KeywordWeight: 1,
		Percentile:    75,
		SilenceGapSec: 2,
		MaxSegmentSec: 180,
		MinClipSec:    30,
		MaxClipSec:    180,
		MaxCandidates: 20,
		TopAuthors:    10,
		TopicMarkers:  subtitles.DefaultTopicMarkers(),
	}
}

func (p Params) Validate() error {
	if err := p.commentOptions().Validate(); err != nil {
		return err
	}
	if err := p.segmentOptions().Validate(); err != nil {
		return err
	}
	if err := p.clipOptions().Validate(); err != nil {
		return err
	}
	if p.TopAuthors < 0 {
		return fmt.Errorf("top authors must be >= 0")
	}
	return nil
}

func (p Params) commentOptions() comments.Options {
	return comments.Options{
		WindowSec:     p.WindowSec,
		Keywords:      p.Keywords,
		EventWeight:   p.EventWeight,
		KeywordWeight: p.KeywordWeight,
		Percentile:    p.Percentile,
	}
}

func (p Params) segmentOptions() subtitles.Options {
	return subtitles.Options{
		SilenceGapSec: p.SilenceGapSec,
		MaxSegmentSec: p.MaxSegmentSec,
	}
}

func (p Params) clipOptions() clips.Options {
	return clips.Options{
		MinClipSec:    p.MinClipSec,
		MaxClipSec:    p.MaxClipSec,
		MaxCandidates: p.MaxCandidates,
	}
}
