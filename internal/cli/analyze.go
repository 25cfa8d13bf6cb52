package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kiricut/internal/logging"
	"kiricut/internal/pipeline"
	"kiricut/internal/usecase"
)

func newAnalyzeCmd(logger logging.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "analyze <url-or-id>",
		Short:        "Score cached artifacts and print clip candidates",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], logger)
		},
	}

	defaults := defaultParams()

	// Visible flags
	cmd.Flags().Float64("window", defaults.WindowSec, "Chat bucket width in seconds")
	cmd.Flags().Float64("percentile", defaults.Percentile, "High-activity score percentile")
	cmd.Flags().Float64("min-clip", defaults.MinClipSec, "Minimum clip length in seconds")
	cmd.Flags().Float64("max-clip", defaults.MaxClipSec, "Maximum clip length in seconds")
	cmd.Flags().StringSlice("keywords", defaults.Keywords, "Reaction keywords to count")
	cmd.Flags().Int("top", defaults.MaxCandidates, "Maximum number of candidates (0 = unlimited)")
	cmd.Flags().Bool("json", false, "Print the full report as JSON")
	cmd.Flags().Bool("csv", false, "Print the candidates as CSV")

	// Hidden tuning flags (internal)
	cmd.Flags().Float64("event-weight", defaults.EventWeight, "Weight of the raw comment count")
	cmd.Flags().Float64("keyword-weight", defaults.KeywordWeight, "Weight of the keyword hit count")
	cmd.Flags().Float64("gap", defaults.SilenceGapSec, "Silence gap that splits topic segments, seconds")
	cmd.Flags().Float64("max-segment", defaults.MaxSegmentSec, "Maximum topic segment length, seconds")
	for _, name := range []string{"event-weight", "keyword-weight", "gap", "max-segment"} {
		_ = cmd.Flags().MarkHidden(name)
	}

	return cmd
}

func runAnalyze(cmd *cobra.Command, raw string, logger logging.Logger) error {
	videoID, err := resolveVideoID(raw)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	asCSV, _ := cmd.Flags().GetBool("csv")
	if asJSON && asCSV {
		return errors.New("choose one of --json or --csv")
	}

	cfg := pipelineConfig(cmd, videoID, logger)
	cfg.Params = analyzeParams(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := pipeline.Analyze(ctx, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return pipeline.ExportJSON(out, report)
	case asCSV:
		return pipeline.ExportCSV(out, report)
	default:
		printReport(out, report)
		return nil
	}
}

func analyzeParams(cmd *cobra.Command) usecase.Params {
	p := defaultParams()
	p.WindowSec, _ = cmd.Flags().GetFloat64("window")
	p.Percentile, _ = cmd.Flags().GetFloat64("percentile")
	p.MinClipSec, _ = cmd.Flags().GetFloat64("min-clip")
	p.MaxClipSec, _ = cmd.Flags().GetFloat64("max-clip")
	p.Keywords, _ = cmd.Flags().GetStringSlice("keywords")
	p.MaxCandidates, _ = cmd.Flags().GetInt("top")
	p.EventWeight, _ = cmd.Flags().GetFloat64("event-weight")
	p.KeywordWeight, _ = cmd.Flags().GetFloat64("keyword-weight")
	p.SilenceGapSec, _ = cmd.Flags().GetFloat64("gap")
	p.MaxSegmentSec, _ = cmd.Flags().GetFloat64("max-segment")
	return p
}
