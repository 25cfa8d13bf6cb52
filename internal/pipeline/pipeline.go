package pipeline

import (
	"context"
	"errors"
	"time"

	"kiricut/internal/ports"
	"kiricut/internal/ports/adapters/timedtext"
	"kiricut/internal/ports/adapters/ytdlp"
	"kiricut/internal/store"
	"kiricut/internal/types"
	"kiricut/internal/usecase"
)

type Config struct {
	VideoID string

	// DataDir is the base directory for cached artifacts. If empty,
	// defaults to "data".
	DataDir string

	Params usecase.Params

	YTDLPBin      string
	FetchTimeout  time.Duration
	SubtitleLangs []string

	TimedtextBaseURL      string
	TimedtextAllowedHosts []string

	Logf func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.VideoID == "" {
		return errors.New("video id is empty")
	}
	return c.ValidateBase()
}

// ValidateBase checks the parts of the config that do not depend on a
// video id. The server runs against the whole artifact cache, not one
// video.
func (c Config) ValidateBase() error {
	return timedtext.ValidateBaseURL(
		c.TimedtextBaseURL,
		c.TimedtextAllowedHosts,
	)
}

func (c Config) dataDir() string {
	if c.DataDir == "" {
		return "data"
	}
	return c.DataDir
}

// New wires the fetch adapters and the artifact store for a config.
func New(cfg Config) (usecase.Usecase, *store.Store, error) {
	st, err := store.New(cfg.dataDir())
	if err != nil {
		return usecase.Usecase{}, nil, err
	}

	// adapters
	chat := ytdlp.New(cfg.YTDLPBin, cfg.FetchTimeout)
	subs := timedtext.New(cfg.TimedtextBaseURL, cfg.SubtitleLangs, cfg.FetchTimeout)

	uc := usecase.New(usecase.Deps{
		Chat:      chat,
		Subtitles: subs,
		Store:     st,
		Logf:      cfg.Logf,
	})
	return uc, st, nil
}

// Fetch retrieves artifacts for the configured video.
func Fetch(ctx context.Context, cfg Config, chat, subs, force bool) (usecase.FetchResult, error) {
	if err := cfg.Validate(); err != nil {
		return usecase.FetchResult{}, err
	}
	uc, _, err := New(cfg)
	if err != nil {
		return usecase.FetchResult{}, err
	}
	return uc.Fetch(ctx, usecase.FetchInput{
		VideoID:   cfg.VideoID,
		Chat:      chat,
		Subtitles: subs,
		Force:     force,
	})
}

// Analyze runs the analysis pass over the configured video's cached
// artifacts and returns the report.
func Analyze(ctx context.Context, cfg Config) (types.Report, error) {
	if err := cfg.Validate(); err != nil {
		return types.Report{}, err
	}
	uc, _, err := New(cfg)
	if err != nil {
		return types.Report{}, err
	}
	report, err := uc.Analyze(ctx, usecase.AnalyzeInput{VideoID: cfg.VideoID, Params: cfg.Params})
	if err != nil {
		return types.Report{}, err
	}
	if cfg.Logf != nil {
		cfg.Logf("report ready for %s (%d candidates)", cfg.VideoID, len(report.Candidates))
	}
	return report, nil
}

// ensure adapters implement ports
var _ ports.ChatFetcher = (*ytdlp.Adapter)(nil)
var _ ports.SubtitleFetcher = (*timedtext.Adapter)(nil)
