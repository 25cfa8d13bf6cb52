package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kiricut/internal/config"
	"kiricut/internal/logging"
	"kiricut/internal/parser"
	"kiricut/internal/pipeline"
	"kiricut/internal/store"
	"kiricut/internal/usecase"
)

// pipelineConfig assembles a pipeline.Config from the command flags and the
// process environment. Commands overwrite Params afterwards as needed.
func pipelineConfig(cmd *cobra.Command, videoID string, logger logging.Logger) pipeline.Config {
	dataDir, _ := cmd.Flags().GetString("data-dir")

	return pipeline.Config{
		VideoID: videoID,
		DataDir: dataDir,
		Params:  defaultParams(),

		YTDLPBin:     config.GetEnv("YT_DLP", "yt-dlp"),
		FetchTimeout: time.Duration(config.GetEnvInt("FETCH_TIMEOUT_SEC", 0)) * time.Second,

		SubtitleLangs:         config.GetEnvList("SUBTITLE_LANGS", nil),
		TimedtextBaseURL:      config.GetEnv("TIMEDTEXT_BASE_URL", ""),
		TimedtextAllowedHosts: config.GetEnvList("TIMEDTEXT_ALLOWED_HOSTS", nil),

		Logf: logger.Infof,
	}
}

// defaultParams layers env overrides on top of the built-in analysis
// defaults. Flags override both.
func defaultParams() usecase.Params {
	p := usecase.DefaultParams()
	p.WindowSec = config.GetEnvFloat("WINDOW_SEC", p.WindowSec)
	p.Percentile = config.GetEnvFloat("HIGH_ACTIVITY_PERCENTILE", p.Percentile)
	p.Keywords = config.GetEnvList("KEYWORDS", p.Keywords)
	p.MaxCandidates = config.GetEnvInt("MAX_CANDIDATES", p.MaxCandidates)
	return p
}

// resolveVideoID accepts what the dashboard accepts: a watch/live/share URL,
// a bare 11-character id, or the id of an artifact already in the cache.
func resolveVideoID(raw string) (string, error) {
	id, err := parser.ExtractVideoID(raw)
	if err == nil {
		return id, nil
	}
	if s := strings.TrimSpace(raw); store.ValidVideoID(s) {
		return s, nil
	}
	return "", err
}
